package main_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/challengegit/chatbot"
	main "github.com/challengegit/chatbot/cmd/chatbot"
	"github.com/challengegit/chatbot/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAskCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("asks question and prints answer", func(t *testing.T) {
		t.Parallel()

		asker := &mock.Asker{
			AskFn: func(_ context.Context, question string) (string, error) {
				if question == "有給休暇は何日？" {
					return "年20日です。", nil
				}
				return "", nil
			},
		}

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: stdout,
			Stderr: &bytes.Buffer{},
			Asker:  asker,
		}

		cmd := &main.AskCmd{Question: "有給休暇は何日？"}
		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.Equal(t, "年20日です。\n", stdout.String())
	})

	t.Run("prints error message on failure", func(t *testing.T) {
		t.Parallel()

		asker := &mock.Asker{
			AskFn: func(context.Context, string) (string, error) {
				return "", chatbot.Errorf(chatbot.EUPSTREAM, "gemini request failed")
			},
		}

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: stdout,
			Stderr: stderr,
			Asker:  asker,
		}

		err := (&main.AskCmd{Question: "q"}).Run(deps)

		require.Error(t, err)
		assert.Contains(t, stderr.String(), "error: gemini request failed")
		assert.Empty(t, stdout.String())
	})
}
