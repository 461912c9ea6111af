package ai

func geminiModels() []ModelInfo {
	return []ModelInfo{
		{
			Provider:          ProviderNameGemini,
			Name:              "gemini-2.5-flash-lite",
			Family:            "gemini-2.5",
			MaxTokens:         1000000,
			InputCostPer1K:    0.0001,
			OutputCostPer1K:   0.0004,
			SupportsTools:     true,
			SupportsStreaming: true,
		},
		{
			Provider:          ProviderNameGemini,
			Name:              "gemini-2.5-flash",
			Family:            "gemini-2.5",
			MaxTokens:         1000000,
			InputCostPer1K:    0.0003,
			OutputCostPer1K:   0.0025,
			SupportsTools:     true,
			SupportsStreaming: true,
		},
		{
			Provider:          ProviderNameGemini,
			Name:              "gemini-2.5-pro",
			Family:            "gemini-2.5",
			MaxTokens:         2000000,
			InputCostPer1K:    0.00125,
			OutputCostPer1K:   0.01,
			SupportsTools:     true,
			SupportsStreaming: true,
		},
	}
}

func openAIModels() []ModelInfo {
	return []ModelInfo{
		{
			Provider:          ProviderNameOpenAI,
			Name:              "gpt-4o-mini",
			Family:            "gpt-4o",
			MaxTokens:         128000,
			InputCostPer1K:    0.00015,
			OutputCostPer1K:   0.0006,
			SupportsTools:     true,
			SupportsStreaming: true,
		},
		{
			Provider:          ProviderNameOpenAI,
			Name:              "gpt-4o",
			Family:            "gpt-4o",
			MaxTokens:         128000,
			InputCostPer1K:    0.0025,
			OutputCostPer1K:   0.01,
			SupportsTools:     true,
			SupportsStreaming: true,
		},
	}
}
