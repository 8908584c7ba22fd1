package tweak

// catalog is the built-in tweak table. Order is significant: List and
// Grouped preserve it. IDs are persisted in the applied-state file and must
// never change.
var catalog = []Tweak{
	// System
	{
		ID:          "power_plan_high",
		Name:        "High Performance Power Plan",
		Description: "Activates the High Performance power plan to prevent CPU frequency scaling during gameplay, reducing stutters caused by power management.",
		Category:    CategorySystem,
		Elevated:    true,
		ApplyCmd:    `powercfg /setactive 8c5e7fda-e8bf-4a96-9a85-a6e23a8c635c`,
		RestoreCmd:  `powercfg /setactive 381b4222-f694-41f0-9685-ff5bb260df2e`,
	},
	{
		ID:          "game_mode_enable",
		Name:        "Enable Windows Game Mode",
		Description: "Turns on Windows Game Mode to prioritise CPU and GPU resources for the active game and suppress background task interference.",
		Category:    CategorySystem,
		ApplyCmd:    `Set-ItemProperty -Path "HKCU:\Software\Microsoft\GameBar" -Name "AutoGameModeEnabled" -Value 1 -Type DWord -Force`,
		RestoreCmd:  `Set-ItemProperty -Path "HKCU:\Software\Microsoft\GameBar" -Name "AutoGameModeEnabled" -Value 0 -Type DWord -Force`,
	},
	{
		ID:          "disable_game_bar",
		Name:        "Disable Xbox Game Bar",
		Description: "Disables the Xbox Game Bar overlay which can cause micro-stutters and consume CPU/GPU resources during gameplay.",
		Category:    CategorySystem,
		ApplyCmd:    `Set-ItemProperty -Path "HKCU:\Software\Microsoft\Windows\CurrentVersion\GameDVR" -Name "AppCaptureEnabled" -Value 0 -Type DWord -Force; Set-ItemProperty -Path "HKCU:\System\GameConfigStore" -Name "GameDVR_Enabled" -Value 0 -Type DWord -Force`,
		RestoreCmd:  `Set-ItemProperty -Path "HKCU:\Software\Microsoft\Windows\CurrentVersion\GameDVR" -Name "AppCaptureEnabled" -Value 1 -Type DWord -Force; Set-ItemProperty -Path "HKCU:\System\GameConfigStore" -Name "GameDVR_Enabled" -Value 1 -Type DWord -Force`,
	},
	{
		ID:          "system_responsiveness",
		Name:        "Maximise System Responsiveness for Games",
		Description: "Sets SystemResponsiveness to 0 so the Windows Multimedia scheduler dedicates maximum CPU time to the foreground game process.",
		Category:    CategorySystem,
		Elevated:    true,
		ApplyCmd:    `$p = "HKLM:\SOFTWARE\Microsoft\Windows NT\CurrentVersion\Multimedia\SystemProfile"; If (-not (Test-Path $p)) { New-Item -Path $p -Force | Out-Null }; Set-ItemProperty -Path $p -Name "SystemResponsiveness" -Value 0 -Type DWord -Force`,
		RestoreCmd:  `$p = "HKLM:\SOFTWARE\Microsoft\Windows NT\CurrentVersion\Multimedia\SystemProfile"; Set-ItemProperty -Path $p -Name "SystemResponsiveness" -Value 20 -Type DWord -Force`,
	},
	{
		ID:          "games_scheduling_profile",
		Name:        "Optimize Games Scheduling Profile",
		Description: "Raises GPU priority to 8 and CPU priority to 6 in the Windows Multimedia SystemProfile Tasks\\Games key.",
		Category:    CategorySystem,
		Elevated:    true,
		ApplyCmd:    `$p = "HKLM:\SOFTWARE\Microsoft\Windows NT\CurrentVersion\Multimedia\SystemProfile\Tasks\Games"; If (-not (Test-Path $p)) { New-Item -Path $p -Force | Out-Null }; Set-ItemProperty -Path $p -Name "GPU Priority" -Value 8 -Type DWord -Force; Set-ItemProperty -Path $p -Name "Priority" -Value 6 -Type DWord -Force; Set-ItemProperty -Path $p -Name "Scheduling Category" -Value "High" -Type String -Force; Set-ItemProperty -Path $p -Name "SFIO Priority" -Value "High" -Type String -Force`,
		RestoreCmd:  `$p = "HKLM:\SOFTWARE\Microsoft\Windows NT\CurrentVersion\Multimedia\SystemProfile\Tasks\Games"; If (Test-Path $p) { Set-ItemProperty -Path $p -Name "GPU Priority" -Value 2 -Type DWord -Force; Set-ItemProperty -Path $p -Name "Priority" -Value 2 -Type DWord -Force; Set-ItemProperty -Path $p -Name "Scheduling Category" -Value "Medium" -Type String -Force; Set-ItemProperty -Path $p -Name "SFIO Priority" -Value "Normal" -Type String -Force }`,
	},
	{
		ID:          "cpu_priority_separation",
		Name:        "Optimize CPU Priority Separation",
		Description: "Sets Win32PrioritySeparation to 38 (short, variable, foreground-boost) giving the game more CPU quanta over background processes.",
		Category:    CategorySystem,
		Elevated:    true,
		ApplyCmd:    `Set-ItemProperty -Path "HKLM:\SYSTEM\CurrentControlSet\Control\PriorityControl" -Name "Win32PrioritySeparation" -Value 38 -Type DWord -Force`,
		RestoreCmd:  `Set-ItemProperty -Path "HKLM:\SYSTEM\CurrentControlSet\Control\PriorityControl" -Name "Win32PrioritySeparation" -Value 2 -Type DWord -Force`,
	},
	{
		ID:          "visual_effects_performance",
		Name:        "Optimize Visual Effects for Performance",
		Description: "Switches Windows desktop visual effects to 'Adjust for best performance', freeing up CPU and GPU cycles for the game.",
		Category:    CategorySystem,
		ApplyCmd:    `Set-ItemProperty -Path "HKCU:\Software\Microsoft\Windows\CurrentVersion\Explorer\VisualEffects" -Name "VisualFXSetting" -Value 2 -Type DWord -Force`,
		RestoreCmd:  `Set-ItemProperty -Path "HKCU:\Software\Microsoft\Windows\CurrentVersion\Explorer\VisualEffects" -Name "VisualFXSetting" -Value 0 -Type DWord -Force`,
	},
	{
		ID:          "disable_sysmain",
		Name:        "Disable SysMain (Superfetch)",
		Description: "Stops and disables the SysMain service to reduce background disk I/O and RAM pre-loading activity during gaming sessions.",
		Category:    CategorySystem,
		Elevated:    true,
		ApplyCmd:    `Stop-Service -Name "SysMain" -ErrorAction SilentlyContinue; Set-Service -Name "SysMain" -StartupType Disabled -ErrorAction SilentlyContinue`,
		RestoreCmd:  `Set-Service -Name "SysMain" -StartupType Automatic -ErrorAction SilentlyContinue; Start-Service -Name "SysMain" -ErrorAction SilentlyContinue`,
	},
	{
		ID:          "disable_background_apps",
		Name:        "Disable Background App Refresh",
		Description: "Prevents UWP (Microsoft Store) apps from running and refreshing in the background, freeing up CPU and memory for the game.",
		Category:    CategorySystem,
		ApplyCmd:    `Set-ItemProperty -Path "HKCU:\Software\Microsoft\Windows\CurrentVersion\BackgroundAccessApplications" -Name "GlobalUserDisabled" -Value 1 -Type DWord -Force`,
		RestoreCmd:  `Set-ItemProperty -Path "HKCU:\Software\Microsoft\Windows\CurrentVersion\BackgroundAccessApplications" -Name "GlobalUserDisabled" -Value 0 -Type DWord -Force`,
	},
	// Network
	{
		ID:          "disable_network_throttling",
		Name:        "Disable Network Throttling Index",
		Description: "Sets NetworkThrottlingIndex to unlimited, removing the Windows cap on network throughput that can increase in-game latency.",
		Category:    CategoryNetwork,
		Elevated:    true,
		ApplyCmd:    `$p = "HKLM:\SOFTWARE\Microsoft\Windows NT\CurrentVersion\Multimedia\SystemProfile"; If (-not (Test-Path $p)) { New-Item -Path $p -Force | Out-Null }; Set-ItemProperty -Path $p -Name "NetworkThrottlingIndex" -Value 0xFFFFFFFF -Type DWord -Force`,
		RestoreCmd:  `$p = "HKLM:\SOFTWARE\Microsoft\Windows NT\CurrentVersion\Multimedia\SystemProfile"; Set-ItemProperty -Path $p -Name "NetworkThrottlingIndex" -Value 10 -Type DWord -Force`,
	},
	{
		ID:          "disable_nagle",
		Name:        "Disable Nagle's Algorithm (TCP No-Delay)",
		Description: "Sets TcpAckFrequency=1 and TCPNoDelay=1 on all network interfaces to stop packet coalescing and reduce TCP latency during online play.",
		Category:    CategoryNetwork,
		Elevated:    true,
		ApplyCmd:    `$ifaces = Get-ChildItem "HKLM:\SYSTEM\CurrentControlSet\Services\Tcpip\Parameters\Interfaces"; foreach ($i in $ifaces) { Set-ItemProperty -Path $i.PSPath -Name "TcpAckFrequency" -Value 1 -Type DWord -Force -ErrorAction SilentlyContinue; Set-ItemProperty -Path $i.PSPath -Name "TCPNoDelay" -Value 1 -Type DWord -Force -ErrorAction SilentlyContinue }`,
		RestoreCmd:  `$ifaces = Get-ChildItem "HKLM:\SYSTEM\CurrentControlSet\Services\Tcpip\Parameters\Interfaces"; foreach ($i in $ifaces) { Remove-ItemProperty -Path $i.PSPath -Name "TcpAckFrequency" -ErrorAction SilentlyContinue; Remove-ItemProperty -Path $i.PSPath -Name "TCPNoDelay" -ErrorAction SilentlyContinue }`,
	},
	// Graphics
	{
		ID:          "disable_fullscreen_optimizations",
		Name:        "Disable Fullscreen Optimizations",
		Description: "Turns off Windows Fullscreen Optimizations globally via GameConfigStore, which can cause frame-timing inconsistencies in some DirectX titles.",
		Category:    CategoryGraphics,
		ApplyCmd:    `Set-ItemProperty -Path "HKCU:\System\GameConfigStore" -Name "GameDVR_FSEBehaviorMode" -Value 2 -Type DWord -Force; Set-ItemProperty -Path "HKCU:\System\GameConfigStore" -Name "GameDVR_HonorUserFSEBehaviorMode" -Value 1 -Type DWord -Force; Set-ItemProperty -Path "HKCU:\System\GameConfigStore" -Name "GameDVR_FSEBehavior" -Value 2 -Type DWord -Force`,
		RestoreCmd:  `Remove-ItemProperty -Path "HKCU:\System\GameConfigStore" -Name "GameDVR_FSEBehaviorMode" -ErrorAction SilentlyContinue; Remove-ItemProperty -Path "HKCU:\System\GameConfigStore" -Name "GameDVR_HonorUserFSEBehaviorMode" -ErrorAction SilentlyContinue; Remove-ItemProperty -Path "HKCU:\System\GameConfigStore" -Name "GameDVR_FSEBehavior" -ErrorAction SilentlyContinue`,
	},
	{
		ID:          "clear_shader_cache",
		Name:        "Clear GPU Shader Cache",
		Description: "Deletes the DirectX, NVIDIA DXCache and GLCache shader stores. A fresh cache rebuild can resolve stutters from corrupted shader entries.",
		Category:    CategoryGraphics,
		// One-way: the cache rebuilds automatically on next launch.
		ApplyCmd: `$paths = @("$env:LOCALAPPDATA\D3DSCache","$env:LOCALAPPDATA\NVIDIA\DXCache","$env:LOCALAPPDATA\NVIDIA\GLCache","$env:LOCALAPPDATA\AMD\DxcCache"); foreach ($p in $paths) { if (Test-Path $p) { Remove-Item -Path "$p\*" -Recurse -Force -ErrorAction SilentlyContinue } }`,
	},
}
