package configuring

import (
	"errors"
	"strings"

	"github.com/nexalink/lead-manager-api/infrastructure/repository"
	"github.com/nexalink/lead-manager-api/internal/domain"
	"github.com/sirupsen/logrus"
)

var (
	ErrKeyRequired     = errors.New("setting key is required")
	ErrSettingNotFound = errors.New("setting not found")
)

// Configurer manages the automation tuning knobs edited on the dashboard.
type Configurer interface {
	ListSettings() ([]*domain.Setting, error)
	GetSetting(key string) (*domain.Setting, error)
	UpdateSetting(key, value string, description *string) (*domain.Setting, error)
}

type Service struct {
	settingRepo repository.SettingRepository
}

func NewService(settingRepo repository.SettingRepository) Configurer {
	return &Service{
		settingRepo: settingRepo,
	}
}

func (s *Service) ListSettings() ([]*domain.Setting, error) {
	return s.settingRepo.ListSettings()
}

func (s *Service) GetSetting(key string) (*domain.Setting, error) {
	if strings.TrimSpace(key) == "" {
		return nil, ErrKeyRequired
	}

	setting, err := s.settingRepo.GetSetting(key)
	if err != nil {
		return nil, err
	}
	if setting == nil {
		return nil, ErrSettingNotFound
	}
	return setting, nil
}

// UpdateSetting upserts a key. Unknown keys are accepted; the automation
// workflows own the set of keys they read.
func (s *Service) UpdateSetting(key, value string, description *string) (*domain.Setting, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return nil, ErrKeyRequired
	}

	setting := &domain.Setting{
		Key:         key,
		Value:       value,
		Description: description,
	}

	if err := s.settingRepo.UpsertSetting(setting); err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"key":   key,
		"value": value,
	}).Info("configuring: setting updated")

	return setting, nil
}
