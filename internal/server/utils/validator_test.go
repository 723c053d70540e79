package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vzahanych/cwa-forecast/internal/config"
	"github.com/vzahanych/cwa-forecast/internal/forecast"
)

type regionQuery struct {
	Region string `json:"region" validate:"required,region"`
}

func TestValidateStruct_Region(t *testing.T) {
	v := NewValidator(forecast.NewRegions(config.TaiwanRegions))

	assert.Nil(t, ValidateStruct(v, regionQuery{Region: "花蓮縣"}))

	errs := ValidateStruct(v, regionQuery{Region: "Hualien"})
	require.Len(t, errs, 1)
	assert.Equal(t, "region", errs[0].Field)
	assert.Equal(t, "region", errs[0].Tag)
	assert.Contains(t, errs[0].Message, "Hualien")

	errs = ValidateStruct(v, regionQuery{})
	require.Len(t, errs, 1)
	assert.Equal(t, "required", errs[0].Tag)
}
