package session

import apperrors "github.com/xiebiao/bookcatalog/pkg/errors"

// ErrSessionNotFound 会话不存在或已过期
var ErrSessionNotFound = apperrors.New(apperrors.ErrCodeUnauthorized, "Session not found! Please login again")
