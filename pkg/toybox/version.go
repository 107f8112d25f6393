package toybox

// Version is the toybox release version. Release builds set it with
// -ldflags "-X github.com/mesh-intelligence/toybox/pkg/toybox.Version=...".
var Version = "0.1.0"
