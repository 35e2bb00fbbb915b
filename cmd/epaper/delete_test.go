package main_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/fwojciec/epaper"
	main "github.com/fwojciec/epaper/cmd/epaper"
	"github.com/fwojciec/epaper/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeleteCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("requires force flag", func(t *testing.T) {
		t.Parallel()

		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:        context.Background(),
			Stdout:     &bytes.Buffer{},
			Stderr:     stderr,
			Newspapers: &mock.NewspaperService{},
		}

		err := (&main.DeleteCmd{Name: "hxdsb"}).Run(deps)

		assert.Equal(t, epaper.EINVALID, epaper.ErrorCode(err))
		assert.Contains(t, stderr.String(), "--force")
	})

	t.Run("deletes newspaper by name", func(t *testing.T) {
		t.Parallel()

		var deletedID string
		newspapers := &mock.NewspaperService{
			FindNewspaperByNameFn: func(_ context.Context, name string) (*epaper.Newspaper, error) {
				return &epaper.Newspaper{ID: "np-1", Name: name}, nil
			},
			DeleteNewspaperFn: func(_ context.Context, id string) error {
				deletedID = id
				return nil
			},
		}

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:        context.Background(),
			Stdout:     stdout,
			Stderr:     &bytes.Buffer{},
			Newspapers: newspapers,
		}

		err := (&main.DeleteCmd{Name: "hxdsb", Force: true}).Run(deps)

		require.NoError(t, err)
		assert.Equal(t, "np-1", deletedID)
		assert.Contains(t, stdout.String(), `Deleted newspaper "hxdsb"`)
	})

	t.Run("reports unknown newspaper", func(t *testing.T) {
		t.Parallel()

		newspapers := &mock.NewspaperService{
			FindNewspaperByNameFn: func(_ context.Context, name string) (*epaper.Newspaper, error) {
				return nil, epaper.Errorf(epaper.ENOTFOUND, "newspaper %q not found", name)
			},
		}

		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:        context.Background(),
			Stdout:     &bytes.Buffer{},
			Stderr:     stderr,
			Newspapers: newspapers,
		}

		err := (&main.DeleteCmd{Name: "nope", Force: true}).Run(deps)

		assert.Equal(t, epaper.ENOTFOUND, epaper.ErrorCode(err))
		assert.Contains(t, stderr.String(), "epaper list")
	})
}
