package experiments

import (
	"fmt"

	"war/experiments/metrics"

	"github.com/rs/zerolog/log"
)

// RunTurnValuesMatrix writes the war score of every played/won strength pair
// under root and returns the directory it wrote to.
func RunTurnValuesMatrix(root string) (string, error) {
	writer, err := metrics.NewWriter(root, "turn_values_matrix")
	if err != nil {
		return "", fmt.Errorf("failed to create experiment writer: %w", err)
	}

	if err := writer.WriteTurnValuesMatrix(metrics.TurnValuesMatrix()); err != nil {
		return "", fmt.Errorf("failed to write turn values matrix: %w", err)
	}
	log.Info().Msgf("stored turn values matrix in %s", writer.Dir())

	return writer.Dir(), nil
}
