package common

import (
	"github.com/google/uuid"
)

// NewPromptID generates a unique prompt-sentinel ID with the "prompt_" prefix
// Format: prompt_<uuid>
func NewPromptID() string {
	return "prompt_" + uuid.New().String()
}
