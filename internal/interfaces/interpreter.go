package interfaces

import "context"

// Interpreter resolves prompt-provider expressions against an external AI
// collaborator. The compiler never calls this synchronously inline with a
// render: it collects every prompt sentinel emitted during the variable pass
// and hands the whole batch to ResolvePrompts once, in a second pass.
//
// Implementations own their own timeout; a context deadline or cancellation
// must degrade to empty-string answers for the prompts that did not
// complete, never to an error returned from ResolvePrompts itself.
type Interpreter interface {
	// ResolvePrompts answers each prompt string with a same-length slice of
	// responses. A nil Interpreter is a valid collaborator:
	// Compiler.ResolvePrompts treats it as "every prompt resolves to empty".
	ResolvePrompts(ctx context.Context, prompts []string) ([]string, error)
}
