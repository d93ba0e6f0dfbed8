// Package boltdocs implementa el almacén local de documentos (cotizaciones y
// remisiones) sobre bbolt. Reproduce el contrato del localStorage del
// cliente original: claves fijas con un array JSON completo por valor,
// separado por usuario (un bucket por usuario). Estos documentos nunca
// viajan al almacén remoto.
package boltdocs

import (
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/jhoicas/Negocio-api/internal/domain/repository"
)

var _ repository.DocumentStore = (*Store)(nil)

// Store almacén de documentos sobre un archivo bbolt.
type Store struct {
	db *bolt.DB
}

// Open abre (o crea) el archivo de documentos.
func Open(path string) (*Store, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: 2 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("abrir almacén de documentos: %w", err)
	}
	return &Store{db: db}, nil
}

// Get devuelve el array JSON bajo (userID, key); nil si no hay nada guardado.
func (s *Store) Get(userID, key string) ([]byte, error) {
	var out []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(userID))
		if b == nil {
			return nil
		}
		if v := b.Get([]byte(key)); v != nil {
			out = append([]byte{}, v...)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("leer documentos %q: %w", key, err)
	}
	return out, nil
}

// Put reemplaza el array JSON completo bajo (userID, key).
func (s *Store) Put(userID, key string, value []byte) error {
	err := s.db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists([]byte(userID))
		if err != nil {
			return err
		}
		return b.Put([]byte(key), value)
	})
	if err != nil {
		return fmt.Errorf("guardar documentos %q: %w", key, err)
	}
	return nil
}

// Close cierra el archivo.
func (s *Store) Close() error {
	return s.db.Close()
}
