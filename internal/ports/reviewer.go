package ports

import "context"

// Reviewer launches the external tool that lets the user review and apply the
// staged catalog changes. Launch is fire-and-forget; a returned error MUST be
// treated as non-fatal by callers (fallback is an instructional message).
type Reviewer interface {
	Launch(ctx context.Context) error
}
