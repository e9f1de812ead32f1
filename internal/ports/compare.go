package ports

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/brianzzs/GreenFiveInnings/internal/app"
	"github.com/brianzzs/GreenFiveInnings/internal/logging"
	"github.com/brianzzs/GreenFiveInnings/internal/reporting"
)

const maxComparePlayers = 10

func MakeComparePlayersHandler(
	comparePlayers app.ComparePlayers,
	rootLogger *slog.Logger,
	sentryMiddleware func(http.HandlerFunc) http.HandlerFunc,
) http.HandlerFunc {
	middleware := newStandardMiddleware("compare_players", rootLogger, sentryMiddleware)

	handler := func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		rawIDs := r.URL.Query().Get("ids")
		idParts := strings.Split(rawIDs, ",")
		if rawIDs == "" || len(idParts) < 2 {
			http.Error(w, "At least two comma-separated player ids are required", http.StatusBadRequest)
			return
		}
		if len(idParts) > maxComparePlayers {
			http.Error(w, "Too many player ids", http.StatusBadRequest)
			return
		}

		playerIDs := make([]int64, 0, len(idParts))
		for _, part := range idParts {
			playerID, err := parseID(strings.TrimSpace(part))
			if err != nil {
				http.Error(w, "Invalid player id", http.StatusBadRequest)
				return
			}
			playerIDs = append(playerIDs, playerID)
		}

		season, err := parseSeason(r.URL.Query().Get("season"))
		if err != nil {
			http.Error(w, "Invalid season", http.StatusBadRequest)
			return
		}

		ctx = reporting.AddExtrasToContext(ctx, map[string]string{
			"playerIds": rawIDs,
			"season":    season,
		})
		ctx = logging.AddMetaToContext(ctx,
			slog.String("playerIds", rawIDs),
			slog.String("season", season),
		)

		comparison, pieceErrors, err := comparePlayers(ctx, playerIDs, season)
		if err != nil {
			writeDomainError(w, r, err)
			return
		}

		logging.FromContext(ctx).Info("Returning player comparison", "failedPieces", len(pieceErrors))

		writeJSON(w, r, http.StatusOK, responseEnvelope{
			Success: true,
			Data:    comparisonToResponse(comparison),
			Errors:  errorLabels(pieceErrors),
		})
	}

	return middleware(handler)
}
