package llm

import (
	"fmt"

	"vibetune-bot/internal/config"
)

// NewClient builds the inference client selected by LLM_PROVIDER.
func NewClient(cfg *config.Config) (Client, error) {
	switch cfg.LLMProvider {
	case config.ProviderModal:
		return NewModal(cfg.ModalInferenceURL, cfg.InferenceTimeout), nil
	case config.ProviderOpenAI:
		return NewOpenAI(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.OpenAIModel), nil
	case config.ProviderYandex:
		return NewYandex(cfg.YandexOAuthToken, cfg.YandexFolderID)
	default:
		return nil, fmt.Errorf("unknown llm provider: %s", cfg.LLMProvider)
	}
}
