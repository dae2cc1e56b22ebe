package errors_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/pokechain-api/internal/errors"
)

type ValidationTestSuite struct {
	suite.Suite
}

func TestValidationSuite(t *testing.T) {
	suite.Run(t, new(ValidationTestSuite))
}

func (s *ValidationTestSuite) TestValidationError() {
	ve := errors.NewValidationError()
	ve.AddFieldError("name", "is required")
	ve.AddFieldError("seller", "is invalid")
	ve.AddFieldErrorf("price", "must be at least %d", 1)

	s.Assert().True(ve.HasErrors())
	s.Assert().Contains(ve.Error(), "name: is required")
	s.Assert().Contains(ve.Error(), "seller: is invalid")
	s.Assert().Contains(ve.Error(), "price: must be at least 1")

	err := ve.ToError()
	s.Assert().Equal(errors.CodeInvalidArgument, err.Code)
	s.Assert().Equal(errors.ReasonInvalidInput, err.Reason)
	s.Assert().NotNil(err.Meta["validation_errors"])
}

func (s *ValidationTestSuite) TestValidationBuilder() {
	vb := errors.NewValidationBuilder()
	vb.Field("name", "is required").
		Fieldf("level", "must be between %d and %d", 1, 100).
		RequiredField("species").
		InvalidField("rarity", "not a known rarity tier")

	err := vb.Build()
	s.Require().NotNil(err)
	s.Assert().True(errors.IsInvalidArgument(err))
}

func (s *ValidationTestSuite) TestValidationBuilderNoErrors() {
	vb := errors.NewValidationBuilder()
	err := vb.Build()
	s.Assert().Nil(err)
}

func (s *ValidationTestSuite) TestValidateRequired() {
	testCases := []struct {
		name      string
		value     string
		shouldErr bool
	}{
		{"valid value", "test", false},
		{"empty string", "", true},
		{"whitespace only", "   ", true},
		{"valid with spaces", "  test  ", false},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			vb := errors.NewValidationBuilder()
			errors.ValidateRequired("field", tc.value, vb)
			err := vb.Build()
			if tc.shouldErr {
				s.Assert().NotNil(err)
			} else {
				s.Assert().Nil(err)
			}
		})
	}
}

func (s *ValidationTestSuite) TestValidatePositive() {
	vb := errors.NewValidationBuilder()
	errors.ValidatePositive("steps", 0, vb)
	errors.ValidatePositive("price", -5, vb)
	errors.ValidatePositive("hatch_steps", 1000, vb)

	err := vb.Build()
	s.Require().NotNil(err)
	meta := errors.GetMeta(err)
	validationErrors := meta["validation_errors"].(map[string][]string)
	s.Assert().Contains(validationErrors["steps"][0], "must be positive, got 0")
	s.Assert().Contains(validationErrors["price"][0], "got -5")
	s.Assert().NotContains(validationErrors, "hatch_steps")
}

func (s *ValidationTestSuite) TestErrorMessageIsSorted() {
	ve := errors.NewValidationError()
	ve.AddFieldError("seller", "is required")
	ve.AddFieldError("nft_id", "is required")
	ve.AddFieldError("price", "must be positive")

	s.Assert().Equal(
		"validation failed: nft_id: is required; price: must be positive; seller: is required",
		ve.Error(),
	)
}

func (s *ValidationTestSuite) TestValidateRange() {
	vb := errors.NewValidationBuilder()
	errors.ValidateRange("level", 101, 1, 100, vb)
	errors.ValidateRange("attack", 55, 1, 255, vb)
	errors.ValidateRange("hp", 0, 1, 255, vb)

	err := vb.Build()
	s.Require().NotNil(err)
	meta := errors.GetMeta(err)
	validationErrors := meta["validation_errors"].(map[string][]string)
	s.Assert().Contains(validationErrors["level"][0], "must be between 1 and 100, got 101")
	s.Assert().Contains(validationErrors["hp"][0], "must be between 1 and 255")
	s.Assert().NotContains(validationErrors, "attack")
}

func (s *ValidationTestSuite) TestValidateEnum() {
	allowedKinds := []string{"creature", "egg"}

	vb := errors.NewValidationBuilder()
	errors.ValidateEnum("nft_type", "badge", allowedKinds, vb)
	errors.ValidateEnum("filter_type", "egg", allowedKinds, vb)

	err := vb.Build()
	s.Require().NotNil(err)
	meta := errors.GetMeta(err)
	validationErrors := meta["validation_errors"].(map[string][]string)
	s.Assert().Contains(validationErrors["nft_type"][0], "must be one of: creature, egg")
	s.Assert().NotContains(validationErrors, "filter_type")
}

func (s *ValidationTestSuite) TestListingRequestValidation() {
	type listingInput struct {
		Seller string
		Kind   string
		Price  int64
		Stats  map[string]int64
	}

	input := listingInput{
		Seller: "",
		Kind:   "badge",
		Price:  0,
		Stats: map[string]int64{
			"attack":  55,
			"defense": 0,
		},
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("seller", input.Seller, vb)
	errors.ValidateEnum("nft_type", input.Kind, []string{"creature", "egg"}, vb)
	errors.ValidatePositive("price", input.Price, vb)
	for stat, value := range input.Stats {
		errors.ValidateRange(stat, value, 1, 255, vb)
	}

	err := vb.Build()
	s.Require().NotNil(err)
	s.Assert().True(errors.IsInvalidArgument(err))
	s.Assert().True(errors.HasReason(err, errors.ReasonInvalidInput))

	meta := errors.GetMeta(err)
	validationErrors := meta["validation_errors"].(map[string][]string)
	s.Assert().Contains(validationErrors, "seller")
	s.Assert().Contains(validationErrors, "nft_type")
	s.Assert().Contains(validationErrors, "price")
	s.Assert().Contains(validationErrors, "defense")
	s.Assert().NotContains(validationErrors, "attack")
}
