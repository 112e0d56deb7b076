package storage

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smashclub/backend/core"
	"github.com/smashclub/backend/core/athlete"
)

func TestOpen(t *testing.T) {
	ctx := context.Background()
	conf := core.NewTestConfig()

	t.Run("memory", func(t *testing.T) {
		repos, err := Open(ctx, conf)
		require.NoError(t, err)
		assert.Equal(t, EngineMemory, repos.Engine)
		assert.NoError(t, repos.DB.Ping(ctx))
		assert.NoError(t, repos.Migrate(ctx, "up"))

		_, err = repos.Athletes.CreateAthlete(ctx, athlete.Athlete{ID: core.NewID(), Name: "Rina"})
		require.NoError(t, err)
		repos.Reset()
		athletes, err := repos.Athletes.QueryAthletes(ctx, nil)
		require.NoError(t, err)
		assert.Empty(t, athletes)
		assert.NoError(t, repos.Close(ctx))
	})

	t.Run("unknown engine", func(t *testing.T) {
		c := *conf
		c.Database.Engine = "cassandra"
		_, err := Open(ctx, &c)
		assert.Equal(t, ErrUnknownEngine, errors.Cause(err))
	})
}
