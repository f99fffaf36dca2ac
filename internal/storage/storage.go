package storage

import (
	"context"
	"errors"
	"io"
)

// ErrInvalidKey is returned for keys that would escape the storage root.
var ErrInvalidKey = errors.New("storage: invalid key")

// Storage はアップロードファイルの保存・削除を抽象化するインターフェース。
// ローカルファイルシステム実装の他、S3 互換ストレージに差し替え可能。
type Storage interface {
	// Save はファイルを保存し、公開 URL を返す。
	// key はアップロード領域内のファイル名 (例: "party_1718000000000_a1b2c3d4e5f6.jpg")。
	Save(ctx context.Context, key string, data io.Reader, contentType string) (url string, err error)

	// Delete は key に対応するファイルを削除する。存在しない場合はエラーにしない。
	Delete(ctx context.Context, key string) error
}
