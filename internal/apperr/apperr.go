package apperr

import "errors"

// エラー種別。Handlerがこれを見てHTTPステータスに変換する。
type Kind int

const (
	//400 入力不正
	KindValidation Kind = iota + 1
	//404 対象が存在しない（または呼び出し元から見えない）
	KindNotFound
	//401 認証なし・期限切れ
	KindAuth
	//502 DB・メール・為替などの依存先障害
	KindDependency
)

// usecaseが返すアプリケーションエラー。
type Error struct {
	Kind    Kind
	Message string
	cause   error
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.cause }

func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

// 原因付き（ログ用。メッセージはそのままクライアントに出る）
func Wrap(kind Kind, msg string, cause error) *Error {
	return &Error{Kind: kind, Message: msg, cause: cause}
}

func Validation(msg string) *Error { return New(KindValidation, msg) }

func NotFound(msg string) *Error { return New(KindNotFound, msg) }

func Auth(msg string) *Error { return New(KindAuth, msg) }

func Dependency(msg string, cause error) *Error { return Wrap(KindDependency, msg, cause) }

// errorsチェーンからErrorを取り出す
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// 種別判定のショートカット
func IsKind(err error, kind Kind) bool {
	if e, ok := As(err); ok {
		return e.Kind == kind
	}
	return false
}
