package models

// RoleType defines the user role type
type RoleType string

const (
	RoleAdmin     RoleType = "ADMIN"
	RoleBendahara RoleType = "BENDAHARA"
	RolePengurus  RoleType = "PENGURUS"
)

// SantriStatus is the lifecycle status of a santri record. Santri are never
// hard-deleted; leaving the pesantren is a status change.
type SantriStatus string

const (
	SantriStatusAktif  SantriStatus = "Aktif"
	SantriStatusCuti   SantriStatus = "Cuti"
	SantriStatusKeluar SantriStatus = "Keluar"
	SantriStatusLulus  SantriStatus = "Lulus"
)

// SumberPerhitungan tags how a ledger row was produced.
type SumberPerhitungan string

const (
	SumberRealisasi       SumberPerhitungan = "realisasi"
	SumberGeneratePeriod  SumberPerhitungan = "generate_periodik"
	SumberBantuanLangsung SumberPerhitungan = "bantuan_langsung"
)

// PeriodikStatus is the lifecycle status of a periodic ledger row.
type PeriodikStatus string

const (
	PeriodikDraft     PeriodikStatus = "draft"
	PeriodikFinalized PeriodikStatus = "finalized"
)
