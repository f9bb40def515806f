package main

import (
	"context"
	"fmt"

	"github.com/Starling-Strategy/stonesoup/internal/llm"
	"github.com/Starling-Strategy/stonesoup/internal/search"
	"github.com/Starling-Strategy/stonesoup/stonesoup/members"
	"github.com/Starling-Strategy/stonesoup/stonesoup/searchlog"
	"github.com/Starling-Strategy/stonesoup/stonesoup/stories"
)

// creates and configures all service clients
func InitializeServices(memberRepo *members.Repository, storyRepo *stories.Repository, searchLogRepo *searchlog.Repository) (*Services, error) {
	llmClient, err := llm.NewLLM(context.Background())
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}

	weights, err := search.LoadWeights()
	if err != nil {
		return nil, fmt.Errorf("failed to load search weights: %w", err)
	}

	engine := search.NewWithConfig(search.Deps{
		Members:   memberRepo,
		Stories:   storyRepo,
		Embedder:  llmClient,
		Generator: llmClient,
		QueryLog:  searchLogRepo,
	}, weights, search.DefaultOptions())

	return &Services{
		LLM:    llmClient,
		Engine: engine,
	}, nil
}
