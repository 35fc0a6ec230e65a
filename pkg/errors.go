// Package pkg, projede paylaşılan utility'leri barındırır.
// Bu dosya domain-level error tanımlarını içerir.
//
// Go'da error'lar basit değerlerdir (string taşıyan struct'lar).
// errors.New() ile sabit error değişkenleri tanımlarız.
// Böylece error karşılaştırması string yerine referans ile yapılır:
//
//	if errors.Is(err, pkg.ErrNotFound) { ... }
//
// Bu, typo'ya açık string karşılaştırmasından çok daha güvenlidir.
package pkg

import "errors"

// Domain-level error'lar.
// Handler katmanı bu error'ları HTTP status code'larına map'ler.
// Service katmanı bunları döner, handler yakalar.
//
// ErrConflict: Conditional update sıfır satır etkiledi — beklenen kayıt
// iki adım arasında değişmiş/silinmiş demektir. Retry edilmez, caller'a döner.
// ErrExternal: Dış servis (email, image store) hatası — asıl sebep
// fmt.Errorf("%w: ...", pkg.ErrExternal) ile sarılarak log için korunur.
var (
	ErrNotFound      = errors.New("not found")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrForbidden     = errors.New("forbidden")
	ErrAlreadyExists = errors.New("already exists")
	ErrBadRequest    = errors.New("bad request")
	ErrConflict      = errors.New("conflict")
	ErrExternal      = errors.New("external service error")
	ErrInternal      = errors.New("internal error")
)
