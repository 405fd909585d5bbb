package memory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/janosik-bot/janosik/internal/log"
	"github.com/janosik-bot/janosik/internal/model"
	"github.com/janosik-bot/janosik/internal/storage/memory"
)

func TestRepositoryProtips(t *testing.T) {
	tests := map[string]struct {
		actions func(ctx context.Context, t *testing.T, repo *memory.Repository)
	}{
		"Adding protips should assign increasing IDs": {
			actions: func(ctx context.Context, t *testing.T, repo *memory.Repository) {
				p1, err := repo.AddProtip(ctx, "zad1", "use uint64")
				require.NoError(t, err)
				p2, err := repo.AddProtip(ctx, "zad1", "mind the overflow")
				require.NoError(t, err)

				assert.Equal(t, int64(1), p1.ID)
				assert.Equal(t, int64(2), p2.ID)
				assert.False(t, p1.CreatedAt.IsZero())
			},
		},

		"Adding a protip without content should fail": {
			actions: func(ctx context.Context, t *testing.T, repo *memory.Repository) {
				_, err := repo.AddProtip(ctx, "zad1", "")
				assert.ErrorIs(t, err, model.ErrNotValid)
			},
		},

		"Listing protips should return only the task ones in ID order": {
			actions: func(ctx context.Context, t *testing.T, repo *memory.Repository) {
				for _, p := range [][2]string{{"zad1", "a"}, {"zad2", "b"}, {"zad1", "c"}} {
					_, err := repo.AddProtip(ctx, p[0], p[1])
					require.NoError(t, err)
				}

				protips, err := repo.ListProtips(ctx, "zad1")
				require.NoError(t, err)
				require.Len(t, protips, 2)
				assert.Equal(t, "a", protips[0].Content)
				assert.Equal(t, "c", protips[1].Content)
			},
		},

		"Listing protips of an unknown task should return empty": {
			actions: func(ctx context.Context, t *testing.T, repo *memory.Repository) {
				protips, err := repo.ListProtips(ctx, "nope")
				require.NoError(t, err)
				assert.Empty(t, protips)
			},
		},

		"Listing tasks should return distinct sorted tasks": {
			actions: func(ctx context.Context, t *testing.T, repo *memory.Repository) {
				for _, p := range [][2]string{{"zad2", "a"}, {"zad1", "b"}, {"zad2", "c"}} {
					_, err := repo.AddProtip(ctx, p[0], p[1])
					require.NoError(t, err)
				}

				tasks, err := repo.ListTasks(ctx)
				require.NoError(t, err)
				assert.Equal(t, []string{"zad1", "zad2"}, tasks)
			},
		},

		"Removing a protip should delete it": {
			actions: func(ctx context.Context, t *testing.T, repo *memory.Repository) {
				p, err := repo.AddProtip(ctx, "zad1", "a")
				require.NoError(t, err)

				require.NoError(t, repo.RemoveProtip(ctx, p.ID))

				protips, err := repo.ListProtips(ctx, "zad1")
				require.NoError(t, err)
				assert.Empty(t, protips)
			},
		},

		"Removing a missing protip should fail with not found": {
			actions: func(ctx context.Context, t *testing.T, repo *memory.Repository) {
				err := repo.RemoveProtip(ctx, 42)
				assert.ErrorIs(t, err, model.ErrNotFound)
			},
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			repo, err := memory.NewRepository(memory.RepositoryConfig{Logger: log.Noop})
			require.NoError(t, err)

			test.actions(context.TODO(), t, repo)
		})
	}
}
