package activity

import "context"

// Subject is the item a recorded command acted on. Commands attach it to
// their context once the item is known; the root command reads it back
// when it writes the entry.
type Subject struct {
	ItemID   int
	ItemName string
	Qty      int
}

type subjectKey struct{}

// WithSubject attaches s to ctx. Zero fields keep any value already set.
func WithSubject(ctx context.Context, s Subject) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	existing, _ := ctx.Value(subjectKey{}).(Subject)
	if s.ItemID == 0 {
		s.ItemID = existing.ItemID
	}
	if s.ItemName == "" {
		s.ItemName = existing.ItemName
	}
	if s.Qty == 0 {
		s.Qty = existing.Qty
	}
	return context.WithValue(ctx, subjectKey{}, s)
}

// SubjectFrom returns the Subject stored in ctx.
func SubjectFrom(ctx context.Context) Subject {
	if ctx == nil {
		return Subject{}
	}
	s, _ := ctx.Value(subjectKey{}).(Subject)
	return s
}
