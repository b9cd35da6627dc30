package configuring

import (
	"testing"

	"github.com/nexalink/lead-manager-api/infrastructure/repository/mocks"
	"github.com/nexalink/lead-manager-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestService(t *testing.T) (Configurer, *mocks.MockSettingRepository) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	mockSettingRepo := mocks.NewMockSettingRepository(ctrl)
	return NewService(mockSettingRepo), mockSettingRepo
}

func TestService_GetSetting(t *testing.T) {
	service, mockSettingRepo := newTestService(t)

	mockSettingRepo.EXPECT().
		GetSetting(domain.SettingSubmissionMaxRetries).
		Return(&domain.Setting{Key: domain.SettingSubmissionMaxRetries, Value: "3"}, nil)

	setting, err := service.GetSetting(domain.SettingSubmissionMaxRetries)
	require.NoError(t, err)
	assert.Equal(t, "3", setting.Value)
}

func TestService_GetSetting_NotFound(t *testing.T) {
	service, mockSettingRepo := newTestService(t)

	mockSettingRepo.EXPECT().GetSetting("no_such_key").Return(nil, nil)

	_, err := service.GetSetting("no_such_key")
	assert.ErrorIs(t, err, ErrSettingNotFound)
}

func TestService_GetSetting_EmptyKey(t *testing.T) {
	service, _ := newTestService(t)

	_, err := service.GetSetting("  ")
	assert.ErrorIs(t, err, ErrKeyRequired)
}

func TestService_UpdateSetting(t *testing.T) {
	service, mockSettingRepo := newTestService(t)

	mockSettingRepo.EXPECT().
		UpsertSetting(gomock.Any()).
		DoAndReturn(func(setting *domain.Setting) error {
			assert.Equal(t, domain.SettingUpsellAggressiveness, setting.Key)
			assert.Equal(t, "medium", setting.Value)
			return nil
		})

	setting, err := service.UpdateSetting(domain.SettingUpsellAggressiveness, "medium", nil)
	require.NoError(t, err)
	assert.Equal(t, "medium", setting.Value)
}

func TestService_UpdateSetting_EmptyKey(t *testing.T) {
	service, _ := newTestService(t)

	_, err := service.UpdateSetting("", "x", nil)
	assert.ErrorIs(t, err, ErrKeyRequired)
}
