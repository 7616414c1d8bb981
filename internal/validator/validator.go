package validator

import (
	"fmt"
	"net/url"

	"github.com/arcanaland/deckview/internal/config"
)

// maxSlots is the largest slot count that still fits a terminal comfortably
const maxSlots = 10

type ValidationResults struct {
	Errors   []string
	Warnings []string
}

type Validator struct {
	Config  *config.Config
	Results ValidationResults
}

func NewValidator(cfg *config.Config) *Validator {
	return &Validator{
		Config:  cfg,
		Results: ValidationResults{},
	}
}

func (v *Validator) Validate() (ValidationResults, error) {
	if v.Config == nil {
		return v.Results, fmt.Errorf("no configuration to validate")
	}

	v.validateBase("api_base", v.Config.APIBase)
	v.validateBase("avatar_base", v.Config.AvatarBase)
	v.validateSlots()
	v.validateUserRange()
	v.validateArt()

	return v.Results, nil
}

// validateBase checks that a base URL is an absolute http(s) URL
func (v *Validator) validateBase(key, raw string) {
	if raw == "" {
		v.Results.Errors = append(v.Results.Errors, fmt.Sprintf("%s is required", key))
		return
	}

	u, err := url.Parse(raw)
	if err != nil {
		v.Results.Errors = append(v.Results.Errors, fmt.Sprintf("%s is not a valid URL: %v", key, err))
		return
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		v.Results.Errors = append(v.Results.Errors,
			fmt.Sprintf("%s must use http or https (got %q)", key, u.Scheme))
	}
	if u.Host == "" {
		v.Results.Errors = append(v.Results.Errors, fmt.Sprintf("%s has no host", key))
	}
	if u.RawQuery != "" {
		v.Results.Warnings = append(v.Results.Warnings,
			fmt.Sprintf("%s has a query string that will be discarded by request paths", key))
	}
}

func (v *Validator) validateSlots() {
	switch {
	case v.Config.SlotCount < 1:
		v.Results.Errors = append(v.Results.Errors, "slot_count must be at least 1")
	case v.Config.SlotCount > maxSlots:
		v.Results.Warnings = append(v.Results.Warnings,
			fmt.Sprintf("slot_count %d is large; cards are fetched one after another", v.Config.SlotCount))
	}
}

func (v *Validator) validateUserRange() {
	c := v.Config
	if c.MinUserID > c.MaxUserID {
		v.Results.Errors = append(v.Results.Errors,
			fmt.Sprintf("min_user_id (%d) is greater than max_user_id (%d)", c.MinUserID, c.MaxUserID))
		return
	}
	if c.InitialUserID < c.MinUserID || c.InitialUserID > c.MaxUserID {
		v.Results.Warnings = append(v.Results.Warnings,
			fmt.Sprintf("initial_user_id %d is outside %d..%d; 'next' will wrap to %d",
				c.InitialUserID, c.MinUserID, c.MaxUserID, c.MinUserID))
	}
}

func (v *Validator) validateArt() {
	if v.Config.ArtWidth < 1 {
		v.Results.Errors = append(v.Results.Errors, "art_width must be at least 1")
	}
	if v.Config.ArtHeight < 1 {
		v.Results.Errors = append(v.Results.Errors, "art_height must be at least 1")
	}
}
