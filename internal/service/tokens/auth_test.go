package tokens

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/suite"
)

type TokensTestSuite struct {
	suite.Suite
	key []byte
}

func TestTokensSuite(t *testing.T) {
	suite.Run(t, new(TokensTestSuite))
}

func (s *TokensTestSuite) SetupTest() {
	s.key = []byte("test-secret")
}

func (s *TokensTestSuite) TestRoundTrip() {
	token, err := GenerateAdminJWT(777, time.Hour, s.key)
	s.Require().NoError(err)

	claims, err := ValidateAdminJWT(token, s.key)
	s.Require().NoError(err)
	s.Equal(int64(777), claims.AdminID)
}

func (s *TokensTestSuite) TestExpired() {
	token, err := GenerateAdminJWT(777, -time.Minute, s.key)
	s.Require().NoError(err)

	_, err = ValidateAdminJWT(token, s.key)
	s.Require().ErrorIs(err, ErrTokenExpired)
}

func (s *TokensTestSuite) TestWrongKey() {
	token, err := GenerateAdminJWT(777, time.Hour, s.key)
	s.Require().NoError(err)

	_, err = ValidateAdminJWT(token, []byte("other"))
	s.Require().Error(err)
	s.Require().NotErrorIs(err, ErrTokenExpired)
}

func (s *TokensTestSuite) TestMissingAdminID() {
	token, err := generateJWT(jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}, s.key)
	s.Require().NoError(err)

	_, err = ValidateAdminJWT(token, s.key)
	s.Require().ErrorIs(err, ErrInvalidClaims)
}

func (s *TokensTestSuite) TestRejectsOtherSigningMethod() {
	token := jwt.NewWithClaims(jwt.SigningMethodHS512, AdminClaims{AdminID: 1})
	signed, err := token.SignedString(s.key)
	s.Require().NoError(err)

	_, err = ValidateAdminJWT(signed, s.key)
	s.Require().Error(err)
}
