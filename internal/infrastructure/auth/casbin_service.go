package auth

import (
	"fmt"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	gormadapter "github.com/casbin/gorm-adapter/v3"
	"gorm.io/gorm"
)

// CasbinService owns the enforcer backed by the casbin_rule table
type CasbinService struct{ E *casbin.Enforcer }

// NewCasbinService loads the model at modelPath and the persisted policies from db
func NewCasbinService(db *gorm.DB, modelPath string) (*CasbinService, error) {
	m, err := model.NewModelFromFile(modelPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load casbin model: %w", err)
	}
	return NewCasbinServiceFromModel(db, m)
}

// NewCasbinServiceFromModel is NewCasbinService with an already parsed model
func NewCasbinServiceFromModel(db *gorm.DB, m model.Model) (*CasbinService, error) {
	adp, err := gormadapter.NewAdapterByDB(db)
	if err != nil {
		return nil, fmt.Errorf("failed to create casbin adapter: %w", err)
	}
	e, err := casbin.NewEnforcer(m, adp)
	if err != nil {
		return nil, fmt.Errorf("failed to create casbin enforcer: %w", err)
	}
	if err := e.LoadPolicy(); err != nil {
		return nil, fmt.Errorf("failed to load casbin policies: %w", err)
	}
	return &CasbinService{E: e}, nil
}
