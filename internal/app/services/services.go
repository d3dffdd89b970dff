package services

// Services holds all the service instances
type Services struct {
	AuthService     *AuthService
	SantriService   *SantriService
	WaliService     *WaliService
	DokumenService  *DokumenService
	LayananService  *LayananService
	GenerateService *GenerateService
	PilarService    *PilarService
}
