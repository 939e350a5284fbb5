package agent

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JustinLoye/network-agents/internal/llm/providers"
	"github.com/JustinLoye/network-agents/internal/types"
)

// fakeSpecialist returns a scripted reply and records its tasks.
type fakeSpecialist struct {
	reply string
	err   error
	tasks []string
}

func (f *fakeSpecialist) Run(ctx context.Context, task string) (string, error) {
	f.tasks = append(f.tasks, task)
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

func TestSupervisorDirectAnswer(t *testing.T) {
	provider := providers.NewMockProvider().
		EnqueueText("Hello, how can I help with Internet data today?")

	sup := NewSupervisor(provider, &fakeSpecialist{}, &fakeSpecialist{}, slog.New(slog.DiscardHandler))
	result, err := sup.Run(context.Background(), "hi")
	require.NoError(t, err)

	assert.Equal(t, "Hello, how can I help with Internet data today?", result.Answer)
	assert.Empty(t, result.Handoffs)
}

func TestSupervisorDelegatesAndAggregates(t *testing.T) {
	provider := providers.NewMockProvider().
		EnqueueToolCall("transfer_to_network_operator", `{"task_description": "Run traceroute to google.com"}`).
		EnqueueToolCall("transfer_to_data_retriever", `{"task_description": "Lookup ASN for IP 192.168.1.1"}`).
		EnqueueText("Your ISP gateway is 192.168.1.1, announced by AS2497 (IIJ).")

	operator := &fakeSpecialist{reply: "1  192.168.1.1  0.5 ms"}
	retriever := &fakeSpecialist{reply: "IP 192.168.1.1 belongs to AS2497 (IIJ)."}

	sup := NewSupervisor(provider, retriever, operator, slog.New(slog.DiscardHandler))
	result, err := sup.Run(context.Background(), "Get my ISP via traceroute to google.com and find its AS")
	require.NoError(t, err)

	assert.Equal(t, "Your ISP gateway is 192.168.1.1, announced by AS2497 (IIJ).", result.Answer)
	require.Len(t, result.Handoffs, 2)
	assert.Equal(t, Handoff{Agent: "network_operator", Task: "Run traceroute to google.com", Reply: "1  192.168.1.1  0.5 ms"}, result.Handoffs[0])
	assert.Equal(t, "data_retriever", result.Handoffs[1].Agent)
	assert.Equal(t, []string{"Run traceroute to google.com"}, operator.tasks)
	assert.Equal(t, []string{"Lookup ASN for IP 192.168.1.1"}, retriever.tasks)

	// The specialist replies are fed back to the model as tool payloads
	reqs := provider.Requests()
	require.Len(t, reqs, 3)
	last := reqs[2].Messages[len(reqs[2].Messages)-1]
	assert.Contains(t, last.Content, "AS2497")
}

func TestSupervisorSpecialistFailureReportedToModel(t *testing.T) {
	provider := providers.NewMockProvider().
		EnqueueToolCall("transfer_to_network_operator", `{"task_description": "ping"}`).
		EnqueueText("The network operator could not run the diagnostic.")

	operator := &fakeSpecialist{err: types.NewError(types.AGENT_TOOL_FAILED, "ping binary missing")}

	sup := NewSupervisor(provider, &fakeSpecialist{}, operator, slog.New(slog.DiscardHandler))
	result, err := sup.Run(context.Background(), "ping google.com")
	require.NoError(t, err)

	// The failure is surfaced to the model, not fatal for the run
	assert.Empty(t, result.Handoffs)
	assert.Equal(t, "The network operator could not run the diagnostic.", result.Answer)

	reqs := provider.Requests()
	last := reqs[1].Messages[len(reqs[1].Messages)-1]
	assert.Contains(t, last.Content, "ping binary missing")
}

func TestSupervisorStepBound(t *testing.T) {
	provider := providers.NewMockProvider()
	for i := 0; i < 3; i++ {
		provider.EnqueueToolCall("transfer_to_data_retriever", `{"task_description": "loop"}`)
	}

	sup := NewSupervisor(provider, &fakeSpecialist{reply: "data"}, &fakeSpecialist{},
		slog.New(slog.DiscardHandler), WithMaxSteps(3))
	_, err := sup.Run(context.Background(), "loop forever")
	require.Error(t, err)
	assert.Equal(t, types.AGENT_STEP_EXCEEDED, types.CodeOf(err))
}
