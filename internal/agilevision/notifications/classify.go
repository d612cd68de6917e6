package notifications

import (
	"errors"
	"net"
	"net/textproto"
	"strings"

	"github.com/agile-vision/agilevision/internal/agilevision/apierrors"
)

// ClassifySendError переводит транспортную ошибку SMTP в элемент таксономии
// apierrors: ошибка авторизации, сетевая недоступность или общий сбой отправки.
func ClassifySendError(err error) apierrors.DefinedError {
	if err == nil {
		return apierrors.ErrEmailSendFailed
	}

	var protoErr *textproto.Error
	if errors.As(err, &protoErr) {
		switch protoErr.Code {
		case 530, 534, 535:
			return apierrors.ErrEmailAuth
		}
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return apierrors.ErrEmailUnavailable
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return apierrors.ErrEmailUnavailable
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "username and password not accepted"),
		strings.Contains(msg, "authentication failed"),
		strings.Contains(msg, "auth"):
		return apierrors.ErrEmailAuth
	case strings.Contains(msg, "connection refused"),
		strings.Contains(msg, "no such host"),
		strings.Contains(msg, "network"),
		strings.Contains(msg, "timeout"),
		strings.Contains(msg, "broken pipe"):
		return apierrors.ErrEmailUnavailable
	}

	return apierrors.ErrEmailSendFailed
}
