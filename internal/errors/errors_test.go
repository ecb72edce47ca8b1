package errors_test

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mhtoin/initbot/internal/errors"
)

type ErrorsTestSuite struct {
	suite.Suite
}

func TestErrorsSuite(t *testing.T) {
	suite.Run(t, new(ErrorsTestSuite))
}

func (s *ErrorsTestSuite) TestNewError() {
	testCases := []struct {
		name     string
		code     errors.Code
		message  string
		expected string
	}{
		{
			name:     "not found error",
			code:     errors.CodeNotFound,
			message:  "character not found",
			expected: "NOT_FOUND: character not found",
		},
		{
			name:     "invalid notation error",
			code:     errors.CodeInvalidNotation,
			message:  "not dice",
			expected: "INVALID_NOTATION: not dice",
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			err := errors.New(tc.code, tc.message)
			s.Assert().Equal(tc.expected, err.Error())
			s.Assert().Equal(tc.code, err.Code)
			s.Assert().Equal(tc.message, err.Message)
		})
	}
}

func (s *ErrorsTestSuite) TestWrapPreservesCode() {
	base := errors.NotFoundf("character %s not found", "Mel")
	wrapped := errors.Wrap(base, "lookup failed")

	s.Assert().Equal(errors.CodeNotFound, wrapped.Code)
	s.Assert().True(errors.IsNotFound(wrapped))
	s.Assert().ErrorIs(wrapped, base)
}

func (s *ErrorsTestSuite) TestWrapPlainErrorIsInternal() {
	wrapped := errors.Wrap(fmt.Errorf("disk full"), "save failed")

	s.Assert().True(errors.IsInternal(wrapped))
	s.Assert().Equal("save failed", errors.GetMessage(wrapped))
	s.Assert().Nil(errors.Wrap(nil, "nothing"))
}

func (s *ErrorsTestSuite) TestMatchErrorsCarryCandidates() {
	candidates := []string{"Mediocre Mel", "Medusa"}
	err := fmt.Errorf("resolving: %w", errors.AmbiguousMatch("med", candidates))

	s.Assert().True(errors.IsAmbiguousMatch(err))
	s.Assert().Equal(candidates, errors.GetCandidates(err))
	s.Assert().Contains(errors.GetMessage(err), "Mediocre Mel")

	none := errors.NoMatch("zed", candidates)
	s.Assert().True(errors.IsNoMatch(none))
	s.Assert().Equal(candidates, errors.GetCandidates(none))
}

func (s *ErrorsTestSuite) TestWrapCopiesMeta() {
	base := errors.NoMatch("zed", []string{"Mel"})
	wrapped := errors.WrapWithCode(base, errors.CodeUnavailable, "lookup failed").
		WithMeta(errors.MetaQuery, "other")

	s.Assert().Equal(errors.CodeUnavailable, wrapped.Code)
	s.Assert().Equal([]string{"Mel"}, errors.GetCandidates(wrapped))
	s.Assert().Equal("zed", base.Meta[errors.MetaQuery])
	s.Assert().Equal("UNAVAILABLE: lookup failed: "+base.Error(), wrapped.Error())
}

func (s *ErrorsTestSuite) TestGetCode() {
	s.Assert().Equal(errors.CodeOK, errors.GetCode(nil))
	s.Assert().Equal(errors.CodeInternal, errors.GetCode(stderrors.New("plain")))
	s.Assert().Equal(errors.CodeAlreadyExists, errors.GetCode(errors.AlreadyExistsf("dup %d", 1)))
	s.Assert().Nil(errors.GetCandidates(stderrors.New("plain")))
}

func (s *ErrorsTestSuite) TestUserFacing() {
	s.Assert().True(errors.CodeNoMatch.UserFacing())
	s.Assert().False(errors.CodeInternal.UserFacing())
}
