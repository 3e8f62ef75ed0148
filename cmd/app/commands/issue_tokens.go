package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	tokenUseCase "github.com/allisson/docgate/internal/token/usecase"
)

// RunIssueTokens issues a batch of generation tokens from the command line. Tokens
// issued this way carry no issuer. Requests above the batch cap are clamped by the
// use case.
func RunIssueTokens(
	ctx context.Context,
	tokenUseCase tokenUseCase.GenerationTokenUseCase,
	logger *slog.Logger,
	writer io.Writer,
	count int,
	format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}
	if count < 1 {
		return fmt.Errorf("count must be a positive number, got: %d", count)
	}

	logger.Info("issuing generation tokens", slog.Int("requested", count))

	tokens, err := tokenUseCase.Issue(ctx, count, nil)
	if err != nil {
		return fmt.Errorf("failed to issue generation tokens: %w", err)
	}

	if format == "json" {
		values := make([]string, 0, len(tokens))
		for _, token := range tokens {
			values = append(values, token.Token)
		}
		if err := writeJSON(writer, map[string]any{"count": len(tokens), "tokens": values}); err != nil {
			return err
		}
	} else {
		for _, token := range tokens {
			_, _ = fmt.Fprintln(writer, token.Token)
		}
	}

	logger.Info("generation tokens issued", slog.Int("count", len(tokens)))
	return nil
}
