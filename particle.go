package kestrel

// Particle types identify how the server interprets a stored value's bytes.
// For raw/string wire elements the particle type is the first payload byte.
// These codes are a fixed server contract; do not renumber.
const (
	ParticleTypeNull       = 0
	ParticleTypeInteger    = 1
	ParticleTypeDouble     = 2
	ParticleTypeString     = 3
	ParticleTypeBlob       = 4
	ParticleTypeNativeBlob = 7
	ParticleTypeBool       = 17
	ParticleTypeHLL        = 18
	ParticleTypeMap        = 19
	ParticleTypeList       = 20
	ParticleTypeGeoJSON    = 23
)
