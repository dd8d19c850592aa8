package pages

import (
	"context"

	"github.com/ccms-app/dashboard/internal/apiclient"
	"github.com/ccms-app/dashboard/internal/cibil"
)

const cibilTrendDays = 365

// CibilScoreView is the score screen.
type CibilScoreView struct {
	cibil.Snapshot
	Band  string           `json:"band"`
	Trend apiclient.Result `json:"trend,omitempty"`
}

// CibilScore is the score screen with history and trend.
type CibilScore struct {
	cibil *cibil.Store
	trend apiclient.Result
}

// CibilScore mounts the current score, the history and the yearly trend.
// The trend is optional; when it cannot be loaded the screen shows without it.
func (p *Pages) CibilScore(ctx context.Context) (*CibilScore, error) {
	c := &CibilScore{cibil: cibil.NewStore(p.cibil)}
	err := mount(ctx,
		c.cibil.Fetch,
		func(ctx context.Context) { c.cibil.FetchHistory(ctx, cibil.Filters{}) },
		func(ctx context.Context) {
			trend, err := c.cibil.Trend(ctx, cibilTrendDays)
			if err == nil {
				c.trend = trend
			}
		},
	)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (c *CibilScore) View() CibilScoreView {
	return CibilScoreView{Snapshot: c.cibil.Snapshot(), Band: cibil.Band(c.cibil.Score()), Trend: c.trend}
}

// Verify marks a score report verified.
func (c *CibilScore) Verify(ctx context.Context, id, date string) error {
	return report(ctx, "Score verified", "Failed to verify score", func() error {
		return c.cibil.Verify(ctx, id, date)
	})
}
