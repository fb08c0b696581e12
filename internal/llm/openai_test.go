package llm

import (
	"errors"
	"testing"

	openai "github.com/sashabaranov/go-openai"
)

func TestNewOpenAIProviderRequiresKey(t *testing.T) {
	_, err := NewOpenAIProvider(OpenAIConfig{})
	var credentials *ErrInvalidCredentials
	if !errors.As(err, &credentials) {
		t.Fatalf("error = %v, want ErrInvalidCredentials", err)
	}
}

func TestClassifyError(t *testing.T) {
	tests := []struct {
		status int
		want   error
	}{
		{401, &ErrInvalidCredentials{}},
		{403, &ErrInvalidCredentials{}},
		{429, &ErrRateLimited{}},
		{400, &ErrMalformedRequest{}},
		{500, &ErrUnavailable{}},
		{503, &ErrUnavailable{}},
	}

	for _, tt := range tests {
		got := classifyError(&openai.APIError{HTTPStatusCode: tt.status})

		var matched bool
		switch tt.want.(type) {
		case *ErrInvalidCredentials:
			var e *ErrInvalidCredentials
			matched = errors.As(got, &e)
		case *ErrRateLimited:
			var e *ErrRateLimited
			matched = errors.As(got, &e)
		case *ErrMalformedRequest:
			var e *ErrMalformedRequest
			matched = errors.As(got, &e)
		case *ErrUnavailable:
			var e *ErrUnavailable
			matched = errors.As(got, &e)
		}
		if !matched {
			t.Errorf("classifyError(status %d) = %T, want %T", tt.status, got, tt.want)
		}
	}
}

func TestClassifyErrorNonAPIError(t *testing.T) {
	got := classifyError(errors.New("connection refused"))
	var unavailable *ErrUnavailable
	if !errors.As(got, &unavailable) {
		t.Errorf("transport error = %T, want ErrUnavailable", got)
	}
}

func TestUserMessages(t *testing.T) {
	// Every error in the taxonomy carries a candidate-facing cause.
	errs := []UserFacing{
		&ErrInvalidCredentials{},
		&ErrRateLimited{},
		&ErrMalformedRequest{},
		&ErrUnavailable{},
	}
	for _, e := range errs {
		if e.UserMessage() == "" {
			t.Errorf("%T has an empty user message", e)
		}
	}
}

func TestBuildChatMessages(t *testing.T) {
	in := []Message{
		{Role: RoleSystem, Content: "s"},
		{Role: RoleUser, Content: "u"},
		{Role: RoleAssistant, Content: "a"},
	}
	out := buildChatMessages(in)
	wantRoles := []string{
		openai.ChatMessageRoleSystem,
		openai.ChatMessageRoleUser,
		openai.ChatMessageRoleAssistant,
	}
	for i, want := range wantRoles {
		if out[i].Role != want {
			t.Errorf("message %d role = %q, want %q", i, out[i].Role, want)
		}
	}
}
