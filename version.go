package cheoresono

// BuildVersion is the semantic version of the service. Release builds
// override it with ldflags:
//
//	go build -ldflags "-X github.com/oraesatta/cheoresono.BuildVersion=$(git describe --tags)"
var BuildVersion = "1.1.0"
