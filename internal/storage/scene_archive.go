package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/dgraph-io/badger/v3"
	"github.com/google/uuid"
)

const (
	runPrefix   = "run:"
	scenePrefix = "scene:"
)

var (
	ErrArchiveClosed = errors.New("хранилище не готово")
	ErrRunNotFound   = errors.New("запуск не найден")
)

// RunMeta описывает один запуск генератора
type RunMeta struct {
	ID        uuid.UUID `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	Seed      int64     `json:"seed"`
	Count     int       `json:"count"`
	Jitter    float64   `json:"jitter"`
	Objects   int       `json:"objects"`
	Checksum  uint64    `json:"checksum"`
	Output    string    `json:"output"`
}

// SceneArchive хранит историю сгенерированных сцен в BadgerDB
type SceneArchive struct {
	db      *badger.DB
	mutex   sync.RWMutex
	isReady bool
}

// OpenSceneArchive открывает (или создаёт) архив в каталоге dir
func OpenSceneArchive(dir string) (*SceneArchive, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil // Отключаем логирование BadgerDB
	return openArchive(opts)
}

// OpenInMemoryArchive открывает архив без диска (для тестов и пробных запусков)
func OpenInMemoryArchive() (*SceneArchive, error) {
	opts := badger.DefaultOptions("").WithInMemory(true)
	opts.Logger = nil
	return openArchive(opts)
}

func openArchive(opts badger.Options) (*SceneArchive, error) {
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("не удалось открыть BadgerDB: %w", err)
	}

	return &SceneArchive{
		db:      db,
		isReady: true,
	}, nil
}

// Close закрывает хранилище данных
func (a *SceneArchive) Close() error {
	a.mutex.Lock()
	defer a.mutex.Unlock()

	if !a.isReady {
		return nil
	}

	a.isReady = false
	return a.db.Close()
}

// Save сохраняет метаданные и JSON сцены одной транзакцией.
// Если meta.ID пустой, назначается новый UUID.
func (a *SceneArchive) Save(meta RunMeta, payload []byte) (RunMeta, error) {
	a.mutex.RLock()
	defer a.mutex.RUnlock()

	if !a.isReady {
		return RunMeta{}, ErrArchiveClosed
	}

	if meta.ID == uuid.Nil {
		meta.ID = uuid.New()
	}
	if meta.CreatedAt.IsZero() {
		meta.CreatedAt = time.Now().UTC()
	}

	metaData, err := json.Marshal(meta)
	if err != nil {
		return RunMeta{}, fmt.Errorf("ошибка сериализации метаданных: %w", err)
	}

	id := meta.ID.String()
	err = a.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set([]byte(runPrefix+id), metaData); err != nil {
			return err
		}
		return txn.Set([]byte(scenePrefix+id), payload)
	})
	if err != nil {
		return RunMeta{}, fmt.Errorf("ошибка сохранения в BadgerDB: %w", err)
	}

	return meta, nil
}

// Load возвращает метаданные и JSON сцены по идентификатору запуска
func (a *SceneArchive) Load(id uuid.UUID) (RunMeta, []byte, error) {
	a.mutex.RLock()
	defer a.mutex.RUnlock()

	if !a.isReady {
		return RunMeta{}, nil, ErrArchiveClosed
	}

	var metaData, payload []byte
	err := a.db.View(func(txn *badger.Txn) error {
		var err error
		if metaData, err = readValue(txn, runPrefix+id.String()); err != nil {
			return err
		}
		payload, err = readValue(txn, scenePrefix+id.String())
		return err
	})

	if errors.Is(err, badger.ErrKeyNotFound) {
		return RunMeta{}, nil, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	if err != nil {
		return RunMeta{}, nil, fmt.Errorf("ошибка чтения из BadgerDB: %w", err)
	}

	var meta RunMeta
	if err := json.Unmarshal(metaData, &meta); err != nil {
		return RunMeta{}, nil, fmt.Errorf("ошибка десериализации метаданных: %w", err)
	}
	return meta, payload, nil
}

// List возвращает метаданные всех запусков, новые первыми
func (a *SceneArchive) List() ([]RunMeta, error) {
	a.mutex.RLock()
	defer a.mutex.RUnlock()

	if !a.isReady {
		return nil, ErrArchiveClosed
	}

	var runs []RunMeta
	err := a.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(runPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			item := it.Item()
			err := item.Value(func(val []byte) error {
				var meta RunMeta
				if err := json.Unmarshal(val, &meta); err != nil {
					return fmt.Errorf("ключ %s: %w", strings.TrimPrefix(string(item.Key()), runPrefix), err)
				}
				runs = append(runs, meta)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения из BadgerDB: %w", err)
	}

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].CreatedAt.After(runs[j].CreatedAt)
	})
	return runs, nil
}

func readValue(txn *badger.Txn, key string) ([]byte, error) {
	item, err := txn.Get([]byte(key))
	if err != nil {
		return nil, err
	}
	return item.ValueCopy(nil)
}
