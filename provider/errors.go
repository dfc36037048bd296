package provider

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/ollama/ollama/api"
	"github.com/openai/openai-go/v3"
	"github.com/tidwall/gjson"

	"inquisitive/config"
	"inquisitive/model"
)

// errorMessageFromBody extracts error.message from a provider error body.
// OpenAI, OpenRouter and Anthropic all nest it the same way.
func errorMessageFromBody(body []byte) string {
	if len(body) == 0 || !gjson.ValidBytes(body) {
		return ""
	}
	if msg := gjson.GetBytes(body, "error.message"); msg.Type == gjson.String {
		return msg.String()
	}
	return ""
}

// readErrorBody returns the body the SDK kept on the error response.
func readErrorBody(resp *http.Response) []byte {
	if resp == nil || resp.Body == nil {
		return nil
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil
	}
	// Leave the body readable for anyone inspecting the error after us
	resp.Body = io.NopCloser(bytes.NewReader(body))
	return body
}

func providerError(status int, message string, cause error) *model.CompletionError {
	if message == "" {
		message = model.UnknownErrorMessage
	}
	return &model.CompletionError{
		Kind:       model.FailureProvider,
		StatusCode: status,
		Message:    message,
		Err:        cause,
	}
}

func transportError(err error) *model.CompletionError {
	return &model.CompletionError{Kind: model.FailureTransport, Err: err}
}

func malformedError(message string) *model.CompletionError {
	return &model.CompletionError{Kind: model.FailureMalformed, Message: message}
}

// classifyOpenAIError maps an openai-go error to a CompletionError.
func classifyOpenAIError(err error) *model.CompletionError {
	var apiErr *openai.Error
	if !errors.As(err, &apiErr) {
		return classifyTransport(err)
	}

	message := errorMessageFromBody(readErrorBody(apiErr.Response))
	if message == "" {
		message = apiErr.Message
	}
	return providerError(apiErr.StatusCode, message, err)
}

// classifyAnthropicError maps an anthropic-sdk-go error to a CompletionError.
func classifyAnthropicError(err error) *model.CompletionError {
	var apiErr *anthropic.Error
	if !errors.As(err, &apiErr) {
		return classifyTransport(err)
	}

	return providerError(apiErr.StatusCode, errorMessageFromBody(readErrorBody(apiErr.Response)), err)
}

// classifyOllamaError maps an ollama/api error to a CompletionError.
func classifyOllamaError(err error) *model.CompletionError {
	var statusErr api.StatusError
	if errors.As(err, &statusErr) {
		return providerError(statusErr.StatusCode, statusErr.ErrorMessage, err)
	}
	var statusErrPtr *api.StatusError
	if errors.As(err, &statusErrPtr) {
		return providerError(statusErrPtr.StatusCode, statusErrPtr.ErrorMessage, err)
	}
	return classifyTransport(err)
}

func classifyTransport(err error) *model.CompletionError {
	if config.DebugLog != nil {
		if errors.Is(err, context.Canceled) {
			config.DebugLog.Printf("[Provider] request cancelled")
		} else {
			config.DebugLog.Printf("[Provider] transport failure: %v", err)
		}
	}
	return transportError(err)
}
