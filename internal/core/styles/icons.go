package styles

var (
	IconSparkles = "✨"
	IconSun      = "☀"
	IconMoon     = "☾"
	IconCopy     = "⧉"
	IconDownload = "⤓"
	IconCheck    = "✅"
	IconWarning  = "⚠️"
)
