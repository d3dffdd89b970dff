package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository     *UserRepository
	TokenRepository    *TokenRepository
	SantriRepository   *SantriRepository
	WaliRepository     *WaliRepository
	DokumenRepository  *DokumenRepository
	KeuanganRepository *KeuanganRepository
	LedgerRepository   *LedgerRepository
	PilarRepository    *PilarRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:     NewUserRepository(db),
		TokenRepository:    NewTokenRepository(db),
		SantriRepository:   NewSantriRepository(db),
		WaliRepository:     NewWaliRepository(db),
		DokumenRepository:  NewDokumenRepository(db),
		KeuanganRepository: NewKeuanganRepository(db),
		LedgerRepository:   NewLedgerRepository(db),
		PilarRepository:    NewPilarRepository(db),
	}
}
