package notifications

import (
	"errors"
	"net"
	"net/textproto"
	"testing"

	"github.com/agile-vision/agilevision/internal/agilevision/apierrors"
	"github.com/stretchr/testify/assert"
)

func TestClassifySendError_Auth(t *testing.T) {
	err := &textproto.Error{Code: 535, Msg: "5.7.8 Username and Password not accepted"}
	assert.Equal(t, apierrors.ErrEmailAuth.Code, ClassifySendError(err).Code)

	err = &textproto.Error{Code: 530, Msg: "5.7.0 Authentication Required"}
	assert.Equal(t, apierrors.ErrEmailAuth.Code, ClassifySendError(err).Code)

	plain := errors.New("535 authentication failed")
	assert.Equal(t, apierrors.ErrEmailAuth.Code, ClassifySendError(plain).Code)
}

func TestClassifySendError_Network(t *testing.T) {
	dnsErr := &net.DNSError{Err: "no such host", Name: "smtp.invalid"}
	assert.Equal(t, apierrors.ErrEmailUnavailable.Code, ClassifySendError(dnsErr).Code)

	opErr := &net.OpError{Op: "dial", Net: "tcp", Err: errors.New("connection refused")}
	assert.Equal(t, apierrors.ErrEmailUnavailable.Code, ClassifySendError(opErr).Code)

	plain := errors.New("dial tcp 10.0.0.1:587: i/o timeout")
	assert.Equal(t, apierrors.ErrEmailUnavailable.Code, ClassifySendError(plain).Code)
}

func TestClassifySendError_Generic(t *testing.T) {
	assert.Equal(t, apierrors.ErrEmailSendFailed.Code, ClassifySendError(errors.New("message rejected")).Code)
	assert.Equal(t, apierrors.ErrEmailSendFailed.Code, ClassifySendError(nil).Code)

	// Статусы ответов DefinedError
	assert.Equal(t, 500, apierrors.ErrEmailAuth.StatusCode)
	assert.Equal(t, 503, apierrors.ErrEmailUnavailable.StatusCode)
}
