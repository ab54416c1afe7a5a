package llm_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "procure-ai/client/internal/errors"
	"procure-ai/client/internal/interfaces/mocks"
	"procure-ai/client/internal/llm"
	"procure-ai/client/internal/model"
	"procure-ai/client/internal/notify"
	notifymocks "procure-ai/client/internal/notify/mocks"
	"procure-ai/client/internal/registry"
	"procure-ai/client/internal/transport"
)

type controllerFixture struct {
	transport   *mocks.MockTransport
	health      *mocks.MockHealthSource
	credentials *mocks.MockCredentialStore
	notifier    *notifymocks.MockNotifier
	controller  *llm.Controller
}

func newControllerFixture(t *testing.T) *controllerFixture {
	f := &controllerFixture{
		transport:   mocks.NewMockTransport(t),
		health:      mocks.NewMockHealthSource(t),
		credentials: mocks.NewMockCredentialStore(t),
		notifier:    notifymocks.NewMockNotifier(t),
	}
	f.controller = llm.NewController(f.transport, registry.New(), f.health, f.credentials, f.notifier)
	return f
}

func (f *controllerFixture) expectSwitchNotification(name string) {
	f.notifier.On("Notify", mock.MatchedBy(func(n notify.Notification) bool {
		return n.Level == notify.LevelInfo && n.Message == "Switched to "+name
	})).Once()
}

func TestNewController_SelectsLocalDefault(t *testing.T) {
	f := newControllerFixture(t)

	m := f.controller.CurrentModel()
	assert.Equal(t, registry.DefaultModelID, m.ID)
	assert.True(t, m.Local)
}

func TestSwitchModel_UnknownIDLeavesSelection(t *testing.T) {
	f := newControllerFixture(t)

	err := f.controller.SwitchModel("gpt-5")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	assert.Contains(t, err.Error(), "invalid model: gpt-5")

	assert.Equal(t, registry.DefaultModelID, f.controller.CurrentModel().ID)
}

func TestSwitchModel_UpdatesSelectionAndNotifies(t *testing.T) {
	f := newControllerFixture(t)
	f.expectSwitchNotification("GPT-4")

	require.NoError(t, f.controller.SwitchModel("gpt-4"))
	assert.Equal(t, "gpt-4", f.controller.CurrentModel().ID)
}

func TestQuery_CloudModelWithoutCredentialFailsFast(t *testing.T) {
	f := newControllerFixture(t)
	f.expectSwitchNotification("GPT-4")
	require.NoError(t, f.controller.SwitchModel("gpt-4"))

	f.credentials.On("Get", mock.Anything).Return("", nil).Once()

	_, err := f.controller.Query(context.Background(), "hello", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	assert.Contains(t, err.Error(), "an API key is required to use GPT-4")

	f.health.AssertNotCalled(t, "CheckBackend", mock.Anything)
	f.transport.AssertNotCalled(t, "Request", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestQuery_BackendOfflineFailsFast(t *testing.T) {
	f := newControllerFixture(t)
	f.health.On("CheckBackend", mock.Anything).Return(false).Once()

	_, err := f.controller.Query(context.Background(), "hello", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrUnavailable)

	f.transport.AssertNotCalled(t, "Request", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestQuery_LocalModelWithRunnerDownFailsFast(t *testing.T) {
	f := newControllerFixture(t)
	f.health.On("CheckBackend", mock.Anything).Return(true).Once()
	f.health.On("CheckRunner", mock.Anything).Return(false).Once()

	_, err := f.controller.Query(context.Background(), "hello", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrUnavailable)
	assert.Contains(t, err.Error(), "Ollama")

	f.transport.AssertNotCalled(t, "Request", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestQuery_LocalModelSendsFormWithoutAPIKey(t *testing.T) {
	f := newControllerFixture(t)
	f.health.On("CheckBackend", mock.Anything).Return(true).Once()
	f.health.On("CheckRunner", mock.Anything).Return(true).Once()

	f.transport.On("Request",
		mock.Anything,
		http.MethodPost,
		"/api/chat",
		mock.MatchedBy(func(form transport.Form) bool {
			_, hasKey := form.Fields["apiKey"]
			return form.Fields["question"] == "what laptops are approved?" &&
				form.Fields["model"] == "ollama/llama2" &&
				!hasKey &&
				len(form.Files) == 1 &&
				form.Files[0].Name == "policy.pdf"
		}),
		mock.Anything,
		mock.Anything,
	).Run(func(args mock.Arguments) {
		out := args.Get(5).(*model.LLMResponse)
		*out = model.LLMResponse{
			Text:            "The approved list has three models.",
			SourceDocuments: []model.SourceDocument{{PageContent: "approved laptops"}},
		}
	}).Return(nil).Once()

	attachments := []model.Attachment{{Name: "policy.pdf", Data: []byte("pdf bytes")}}
	resp, err := f.controller.Query(context.Background(), "what laptops are approved?", attachments)
	require.NoError(t, err)
	assert.Equal(t, "The approved list has three models.", resp.Text)
	require.Len(t, resp.SourceDocuments, 1)
}

func TestQuery_CloudModelCarriesAPIKeyAndSkipsRunnerCheck(t *testing.T) {
	f := newControllerFixture(t)
	f.expectSwitchNotification("Claude 2")
	require.NoError(t, f.controller.SwitchModel("claude-2"))

	f.credentials.On("Get", mock.Anything).Return("sk-test-789", nil).Once()
	f.health.On("CheckBackend", mock.Anything).Return(true).Once()

	f.transport.On("Request",
		mock.Anything,
		http.MethodPost,
		"/api/chat",
		mock.MatchedBy(func(form transport.Form) bool {
			return form.Fields["model"] == "claude-2" && form.Fields["apiKey"] == "sk-test-789"
		}),
		mock.Anything,
		mock.Anything,
	).Return(nil).Once()

	_, err := f.controller.Query(context.Background(), "hello", nil)
	require.NoError(t, err)

	f.health.AssertNotCalled(t, "CheckRunner", mock.Anything)
}

func TestQuery_MapsAPIErrorToUserMessage(t *testing.T) {
	f := newControllerFixture(t)
	f.health.On("CheckBackend", mock.Anything).Return(true).Once()
	f.health.On("CheckRunner", mock.Anything).Return(true).Once()

	cause := &transport.APIError{Status: 422, Detail: "question is required"}
	f.transport.On("Request", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(cause).Once()

	_, err := f.controller.Query(context.Background(), "hello", nil)
	require.Error(t, err)

	var queryErr *llm.QueryError
	require.ErrorAs(t, err, &queryErr)
	assert.Equal(t, "API Error: question is required", queryErr.Message)

	var apiErr *transport.APIError
	assert.ErrorAs(t, err, &apiErr)
}

func TestQuery_MapsNetworkErrorToUserMessage(t *testing.T) {
	f := newControllerFixture(t)
	f.health.On("CheckBackend", mock.Anything).Return(true).Once()
	f.health.On("CheckRunner", mock.Anything).Return(true).Once()

	cause := &transport.NetworkError{Err: errors.New("connection refused")}
	f.transport.On("Request", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(cause).Once()

	_, err := f.controller.Query(context.Background(), "hello", nil)
	require.Error(t, err)

	var queryErr *llm.QueryError
	require.ErrorAs(t, err, &queryErr)
	assert.Equal(t, "Unable to connect to the server. Please check your connection.", queryErr.Message)
}
