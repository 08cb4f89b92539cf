package model_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/netmon-lab/tacdesk/pkg/domain/model"
	"github.com/netmon-lab/tacdesk/pkg/domain/model/config"
	"github.com/netmon-lab/tacdesk/pkg/domain/types"
)

func testPlatformConfig() *config.PlatformConfig {
	return &config.PlatformConfig{
		Platforms: []config.Platform{
			{ID: "ont_issue", DisplayName: "ONT/GPON Issue", RequiredFields: []string{"platform", "software_version", "ont_model"}},
			{ID: "olt_issue", DisplayName: "OLT Issue", RequiredFields: []string{"platform", "software_version", "type_of_card"}},
		},
	}
}

func TestRequiredFieldsUnion(t *testing.T) {
	cfg := testPlatformConfig()

	fields := model.RequiredFields([]types.PlatformID{"ont_issue", "olt_issue"}, cfg)
	gt.Array(t, fields).Equal([]string{"ont_model", "platform", "software_version", "type_of_card"})

	// Order of problem areas must not matter
	reversed := model.RequiredFields([]types.PlatformID{"olt_issue", "ont_issue"}, cfg)
	gt.Array(t, reversed).Equal(fields)
}

func TestRequiredFieldsUnknownPlatform(t *testing.T) {
	fields := model.RequiredFields([]types.PlatformID{"nonexistent"}, testPlatformConfig())
	gt.Array(t, fields).Length(0)
}

func TestFieldControlDispatch(t *testing.T) {
	options := &model.ContextOptions{
		Platforms: []model.PlatformOption{
			{Name: "E7-2", SoftwareVersions: []string{"3.1", "3.4"}, OLTCardTypes: []string{"GPON-8"}},
			{Name: "E9-2", SoftwareVersions: []string{"4.0"}},
		},
		ONTModels: []string{"812G", "844G"},
	}

	ctrl := model.FieldControl("platform", options, nil)
	gt.Value(t, ctrl.Kind).Equal(model.ControlSelect)
	gt.Array(t, ctrl.Options).Equal([]string{"E7-2", "E9-2"})

	// Software versions follow the chosen platform
	draft := map[string]string{"platform": "E7-2"}
	ctrl = model.FieldControl("software_version", options, draft)
	gt.Value(t, ctrl.Kind).Equal(model.ControlSelect)
	gt.Array(t, ctrl.Options).Equal([]string{"3.1", "3.4"})

	draft["platform"] = "E9-2"
	ctrl = model.FieldControl("software_version", options, draft)
	gt.Array(t, ctrl.Options).Equal([]string{"4.0"})

	// No platform chosen yet: falls back to free text
	ctrl = model.FieldControl("software_version", options, nil)
	gt.Value(t, ctrl.Kind).Equal(model.ControlText)

	ctrl = model.FieldControl("ont_model", options, nil)
	gt.Value(t, ctrl.Kind).Equal(model.ControlSelect)
	gt.Array(t, ctrl.Options).Equal([]string{"812G", "844G"})

	ctrl = model.FieldControl("smx_linux_version", options, nil)
	gt.Value(t, ctrl.Kind).Equal(model.ControlText)
}

func TestFieldLabel(t *testing.T) {
	gt.Value(t, model.FieldLabel("olt_card_type")).Equal("Olt Card Type")
	gt.Value(t, model.FieldLabel("platform")).Equal("Platform")
}
