package main

import (
	"fmt"

	"github.com/challengegit/chatbot"
)

// Run executes the context command.
func (c *ContextCmd) Run(deps *Dependencies) error {
	if err := deps.Cache.Load(deps.Ctx); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", chatbot.ErrorMessage(err))
		return err
	}

	if c.Stats {
		st := deps.Cache.Stats()
		fmt.Fprintf(deps.Stdout, "documents:   %d\n", st.Documents)
		fmt.Fprintf(deps.Stdout, "bytes:       %d\n", st.Bytes)
		if st.Tokens > 0 {
			fmt.Fprintf(deps.Stdout, "tokens:      %d\n", st.Tokens)
		}
		fmt.Fprintf(deps.Stdout, "fingerprint: %s\n", st.Fingerprint)
		return nil
	}

	s, err := deps.Cache.Get(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", chatbot.ErrorMessage(err))
		return err
	}
	fmt.Fprint(deps.Stdout, s)
	return nil
}
