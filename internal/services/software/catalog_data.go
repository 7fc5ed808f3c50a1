package software

import "github.com/tweakforge/tweakforge/internal/models"

// defaultCatalog is the embedded package catalog used at startup and
// whenever the remote catalog is unreachable. Keys are the catalog
// package keys carried in share tokens; InstallerID is the winget ID.
func defaultCatalog() models.SoftwareCatalog {
	return models.SoftwareCatalog{
		"discord": {
			InstallerID: "Discord.Discord",
			Name:        "Discord",
			Category:    "communication",
		},
		"steam": {
			InstallerID: "Valve.Steam",
			Name:        "Steam",
			Category:    "gaming",
		},
		"epic-games": {
			InstallerID: "EpicGames.EpicGamesLauncher",
			Name:        "Epic Games Launcher",
			Category:    "gaming",
		},
		"gog-galaxy": {
			InstallerID: "GOG.Galaxy",
			Name:        "GOG Galaxy",
			Category:    "gaming",
		},
		"ea-app": {
			InstallerID: "ElectronicArts.EADesktop",
			Name:        "EA App",
			Category:    "gaming",
		},
		"battle-net": {
			InstallerID: "Blizzard.BattleNet",
			Name:        "Battle.net",
			Category:    "gaming",
		},
		"obs-studio": {
			InstallerID: "OBSProject.OBSStudio",
			Name:        "OBS Studio",
			Category:    "streaming",
		},
		"streamlabs": {
			InstallerID: "Streamlabs.Streamlabs",
			Name:        "Streamlabs Desktop",
			Category:    "streaming",
		},
		"spotify": {
			InstallerID: "Spotify.Spotify",
			Name:        "Spotify",
			Category:    "media",
		},
		"vlc": {
			InstallerID: "VideoLAN.VLC",
			Name:        "VLC Media Player",
			Category:    "media",
		},
		"7zip": {
			InstallerID: "7zip.7zip",
			Name:        "7-Zip",
			Category:    "utilities",
		},
		"msi-afterburner": {
			InstallerID: "Guru3D.Afterburner",
			Name:        "MSI Afterburner",
			Category:    "utilities",
		},
		"hwinfo": {
			InstallerID: "REALiX.HWiNFO",
			Name:        "HWiNFO",
			Category:    "utilities",
		},
		"logitech-ghub": {
			InstallerID: "Logitech.GHUB",
			Name:        "Logitech G HUB",
			Category:    "peripheral",
		},
		"razer-synapse": {
			InstallerID: "RazerInc.RazerInstaller",
			Name:        "Razer Synapse",
			Category:    "peripheral",
		},
		"corsair-icue": {
			InstallerID: "Corsair.iCUE.5",
			Name:        "Corsair iCUE",
			Category:    "peripheral",
		},
		"steelseries-gg": {
			InstallerID: "SteelSeries.GG",
			Name:        "SteelSeries GG",
			Category:    "peripheral",
		},
		"hyperx-ngenuity": {
			InstallerID: "9P1TBXR6QDCX",
			Name:        "HyperX NGENUITY",
			Category:    "peripheral",
		},
		"lg-onscreen-control": {
			InstallerID: "LG.OnScreenControl",
			Name:        "LG OnScreen Control",
			Category:    "monitor",
		},
		"samsung-easy-setting-box": {
			InstallerID: "Samsung.EasySettingBox",
			Name:        "Samsung Easy Setting Box",
			Category:    "monitor",
		},
		"dell-display-manager": {
			InstallerID: "Dell.DisplayManager",
			Name:        "Dell Display Manager",
			Category:    "monitor",
		},
		"benq-display-pilot": {
			InstallerID: "BenQ.DisplayPilot",
			Name:        "BenQ Display Pilot",
			Category:    "monitor",
		},
		"aoc-g-menu": {
			InstallerID: "AOC.GMenu",
			Name:        "AOC G-Menu",
			Category:    "monitor",
		},
	}
}
