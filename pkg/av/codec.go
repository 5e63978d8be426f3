package av

var videoCodecNames = map[int]string{
	1:  "JPEG",
	2:  "H.263",
	3:  "Screen video",
	4:  "On2 VP6",
	5:  "On2 VP6 with alpha channel",
	6:  "Screen video version 2",
	7:  "AVC",
	12: "HEVC",
}

var audioCodecNames = map[int]string{
	0:  "Linear PCM, platform endian",
	1:  "ADPCM",
	2:  "MP3",
	3:  "Linear PCM, little endian",
	4:  "Nellymoser 16-kHz mono",
	5:  "Nellymoser 8-kHz mono",
	6:  "Nellymoser",
	7:  "G.711 A-law logarithmic PCM",
	8:  "G.711 mu-law logarithmic PCM",
	9:  "reserved",
	10: "AAC",
	11: "Speex",
	14: "MP3 8-Khz",
	15: "Device-specific sound",
}

// VideoCodecName maps an FLV video codec id (videocodecid) to a display name.
func VideoCodecName(id float64) string {
	if name, ok := videoCodecNames[int(id)]; ok {
		return name
	}
	return "Unknown"
}

// AudioCodecName maps an FLV sound format (audiocodecid) to a display name.
func AudioCodecName(id float64) string {
	if name, ok := audioCodecNames[int(id)]; ok {
		return name
	}
	return "Unknown"
}
