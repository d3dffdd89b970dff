package models

import "time"

// Normalized jenis dokumen enumeration. Uploads carrying a legacy label are
// mapped onto one of these before persisting.
const (
	DokumenPasFoto          = "Pas Foto"
	DokumenKartuKeluarga    = "Kartu Keluarga"
	DokumenAktaKelahiran    = "Akta Kelahiran"
	DokumenKTPWaliUtama     = "KTP Wali Utama"
	DokumenKTPWaliPendamp   = "KTP Wali Pendamping"
	DokumenIjazahTerakhir   = "Ijazah Terakhir"
	DokumenTranskripNilai   = "Transkrip Nilai"
	DokumenSuratSehat       = "Surat Keterangan Sehat"
	DokumenAktaKematianAyah = "Akta Kematian Ayah"
	DokumenAktaKematianIbu  = "Akta Kematian Ibu"
	DokumenSKTM             = "SKTM"
	DokumenSertifikat       = "Sertifikat Prestasi"
)

// BlockedJenisDokumen are legacy labels that must not survive in storage.
// Rows carrying one of these are deleted when a santri's documents are loaded.
var BlockedJenisDokumen = []string{
	"Surat Permohonan Bantuan",
	"SKTM (Dhuafa)",
	"KTP/KK",
}

// DokumenSantri is an uploaded document row from the 'dokumen_santri' table.
type DokumenSantri struct {
	ID           string    `json:"id" db:"id"`
	SantriID     string    `json:"santriId" db:"santri_id"`
	JenisDokumen string    `json:"jenisDokumen" db:"jenis_dokumen"`
	NamaFile     string    `json:"namaFile" db:"nama_file"`
	PathFile     string    `json:"pathFile" db:"path_file"`
	UkuranFile   int64     `json:"ukuranFile" db:"ukuran_file"`
	MimeType     string    `json:"mimeType" db:"mime_type"`
	UploadedAt   time.Time `json:"uploadedAt" db:"uploaded_at"`
}

// DokumenRequirement is a derived (never persisted) requirement entry:
// which document a santri must or may provide given kategori and status sosial.
type DokumenRequirement struct {
	JenisDokumen string `json:"jenisDokumen"`
	Required     bool   `json:"required"`
}
