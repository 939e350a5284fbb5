package main

import (
	"github.com/JustinLoye/network-agents/internal/agent"
	"github.com/JustinLoye/network-agents/internal/config"
	"github.com/JustinLoye/network-agents/internal/examples"
	"github.com/JustinLoye/network-agents/internal/iyp"
	"github.com/JustinLoye/network-agents/internal/llm/providers"
	"github.com/JustinLoye/network-agents/internal/netops"
	"github.com/JustinLoye/network-agents/internal/pipeline"
	"github.com/JustinLoye/network-agents/internal/schema"
	"github.com/JustinLoye/network-agents/internal/vocab"
)

// app holds the wired components a command needs. Close releases the IYP
// client's cache store.
type app struct {
	pipeline   *pipeline.Pipeline
	supervisor *agent.Supervisor
	iyp        *iyp.Client
	schema     *schema.Schema
}

func (a *app) Close() error {
	return a.iyp.Close()
}

// newApp wires the full component graph from configuration.
func newApp(cfg *config.Config) (*app, error) {
	provider, err := providers.New(cfg.LLM)
	if err != nil {
		return nil, err
	}

	s, err := loadSchema(cfg.Pipeline)
	if err != nil {
		return nil, err
	}

	bank, err := loadExamples(cfg.Pipeline)
	if err != nil {
		return nil, err
	}

	client, err := iyp.NewClient(cfg.IYP, logger)
	if err != nil {
		return nil, err
	}

	pipe := pipeline.New(provider, s, vocab.Default(),
		examples.NewSelector(bank), client,
		pipeline.WithTopK(cfg.Pipeline.TopK),
		pipeline.WithLogger(logger))

	tools := netops.NewTools()
	retriever := agent.NewDataRetriever(provider, pipe, tools, logger)
	operator := agent.NewNetworkOperator(provider, tools, logger)
	supervisor := agent.NewSupervisor(provider, retriever, operator, logger,
		agent.WithMaxSteps(cfg.Agent.MaxSteps))

	return &app{
		pipeline:   pipe,
		supervisor: supervisor,
		iyp:        client,
		schema:     s,
	}, nil
}

func loadSchema(pc config.PipelineConfig) (*schema.Schema, error) {
	if pc.SchemaPath != "" {
		return schema.LoadFile(pc.SchemaPath)
	}
	return schema.Default()
}

func loadExamples(pc config.PipelineConfig) (*examples.Bank, error) {
	if pc.ExamplesPath != "" {
		return examples.LoadFile(pc.ExamplesPath)
	}
	return examples.Default()
}
