package version

// the real version will be set by the packaging build process
const ARCHD_VERSION = "local build"
