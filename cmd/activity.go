package cmd

import (
	"time"

	"nathanbeddoewebdev/pokeshop/internal/activity"

	"github.com/spf13/cobra"
)

// recordActivity writes a best-effort history entry for commands annotated
// with activity.Annotation. Failures to open or write the repository are
// ignored so history never changes a command's outcome.
func recordActivity(executed *cobra.Command, start time.Time, runErr error) {
	if executed == nil {
		return
	}
	action, ok := executed.Annotations[activity.Annotation]
	if !ok {
		return
	}

	repo, err := activity.Open()
	if err != nil {
		return
	}
	defer repo.Close()

	subject := activity.SubjectFrom(executed.Context())
	entry := &activity.Entry{
		Action:   action,
		Origin:   activity.OriginCLI,
		ItemID:   subject.ItemID,
		ItemName: subject.ItemName,
		Qty:      subject.Qty,
	}
	entry.Finish(start, runErr)
	_ = repo.Save(entry)
}
