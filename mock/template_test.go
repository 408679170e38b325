package mock_test

import (
	"context"
	"testing"

	"github.com/fwojciec/offerdoc"
	"github.com/fwojciec/offerdoc/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplateService_UpdateTemplate(t *testing.T) {
	t.Parallel()

	t.Run("delegates to UpdateTemplateFn", func(t *testing.T) {
		t.Parallel()

		var gotID string
		var gotUpd offerdoc.TemplateUpdate
		svc := &mock.TemplateService{
			UpdateTemplateFn: func(_ context.Context, id string, upd offerdoc.TemplateUpdate) error {
				gotID = id
				gotUpd = upd
				return nil
			},
		}
		upd := offerdoc.TemplateUpdate{Content: "<p>x</p>", Config: offerdoc.DefaultConfig()}

		err := svc.UpdateTemplate(context.Background(), "42", upd)

		require.NoError(t, err)
		assert.Equal(t, "42", gotID)
		assert.Equal(t, upd, gotUpd)
	})
}
