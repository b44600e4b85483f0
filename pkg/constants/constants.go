package constants

const (
	DotTrellis            = ".trellis"
	TrellisDaemonFilename = "trellisd"
	TrellisEnvVarPrefix   = "TRELLIS_"
)
