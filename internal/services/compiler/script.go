package compiler

import (
	"fmt"
	"strings"
)

// dangerBanner is emitted before any other content when the selection
// contains a ludicrous-tier key.
const dangerBanner = `# !!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!
# !!
# !!  THIS BUILD CONTAINS LUDICROUS-TIER TWEAKS.
# !!  They trade real security or stability for frame rate.
# !!  Do not run this on a machine you cannot afford to rebuild.
# !!
# !!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!
`

// adminCheck aborts the script when not run elevated. Every mutation
// below needs administrator rights.
const adminCheck = `$principal = [Security.Principal.WindowsPrincipal][Security.Principal.WindowsIdentity]::GetCurrent()
if (-not $principal.IsInRole([Security.Principal.WindowsBuiltInRole]::Administrator)) {
    Write-Host 'This script must be run from an elevated PowerShell prompt.' -ForegroundColor Red
    exit 1
}
`

// helperBlock is the idempotent primitive and reporting boilerplate
// emitted once per script. Steps self-count outcomes at run time; the
// compiler only provides the scaffolding.
const helperBlock = `$script:Applied = 0
$script:Skipped = 0
$script:Warned  = 0
$script:Failed  = 0

function Write-OkResult([string]$Message)   { $script:Applied++; Write-Host "  [ OK ] $Message" -ForegroundColor Green }
function Write-SkipResult([string]$Message) { $script:Skipped++; Write-Host "  [SKIP] $Message" -ForegroundColor DarkGray }
function Write-WarnResult([string]$Message) { $script:Warned++;  Write-Host "  [WARN] $Message" -ForegroundColor Yellow }
function Write-FailResult([string]$Message) { $script:Failed++;  Write-Host "  [FAIL] $Message" -ForegroundColor Red }

# Runs one step; a step failure never aborts the rest of the script.
function Invoke-TweakStep {
    param([string]$Name, [scriptblock]$Step)
    Write-Host "- $Name"
    try {
        & $Step
    } catch {
        Write-FailResult "$Name : $($_.Exception.Message)"
    }
}

# Sets a registry value only when absent or different.
function Set-RegValue {
    param([string]$Path, [string]$Name, [string]$Type, $Value)
    if (-not (Test-Path $Path)) {
        New-Item -Path $Path -Force | Out-Null
    }
    $current = (Get-ItemProperty -Path $Path -Name $Name -ErrorAction SilentlyContinue).$Name
    if ("$current" -eq "$Value") {
        Write-SkipResult "$Name already set"
        return
    }
    Set-ItemProperty -Path $Path -Name $Name -Type $Type -Value $Value
    Write-OkResult "$Name = $Value"
}

# Stops and disables a service, skipping anything already done.
function Disable-ServiceSafe {
    param([string]$Name)
    $svc = Get-Service -Name $Name -ErrorAction SilentlyContinue
    if (-not $svc) {
        Write-SkipResult "service $Name not present"
        return
    }
    if ($svc.Status -ne 'Stopped') {
        Stop-Service -Name $Name -Force -ErrorAction SilentlyContinue
    }
    if ((Get-Service -Name $Name).StartType -eq 'Disabled') {
        Write-SkipResult "service $Name already disabled"
        return
    }
    Set-Service -Name $Name -StartupType Disabled
    Write-OkResult "service $Name stopped and disabled"
}

# Applies one power-plan sub-setting to the active scheme, AC and DC.
function Set-PowerSetting {
    param([string]$Subgroup, [string]$Setting, [string]$Index)
    powercfg /setacvalueindex scheme_current $Subgroup $Setting $Index | Out-Null
    powercfg /setdcvalueindex scheme_current $Subgroup $Setting $Index | Out-Null
    powercfg /setactive scheme_current | Out-Null
    Write-OkResult "power setting $Setting = $Index"
}

# Disables a scheduled task if present and not already disabled.
function Disable-TaskSafe {
    param([string]$Path, [string]$Name)
    $task = Get-ScheduledTask -TaskPath $Path -TaskName $Name -ErrorAction SilentlyContinue
    if (-not $task) {
        Write-SkipResult "task $Name not present"
        return
    }
    if ($task.State -eq 'Disabled') {
        Write-SkipResult "task $Name already disabled"
        return
    }
    Disable-ScheduledTask -TaskPath $Path -TaskName $Name | Out-Null
    Write-OkResult "task $Name disabled"
}
`

// restorePointStep creates a safety snapshot unless one was made in
// the last 24 hours. The window is evaluated at script run time.
const restorePointStep = `Invoke-TweakStep 'Create system restore point' {
    $recent = Get-ComputerRestorePoint -ErrorAction SilentlyContinue |
        Where-Object { $_.ConvertToDateTime($_.CreationTime) -gt (Get-Date).AddHours(-24) }
    if ($recent) {
        Write-SkipResult 'restore point created within the last 24 hours'
    } else {
        Enable-ComputerRestore -Drive "$env:SystemDrive\" -ErrorAction SilentlyContinue
        Checkpoint-Computer -Description 'TweakForge' -RestorePointType 'MODIFY_SETTINGS'
        Write-OkResult 'restore point created'
    }
}
`

// footer emits the run-time summary. Counts are whatever the helpers
// accumulated while the script ran.
const footer = `Write-Host ''
Write-Host '==================== summary ===================='
Write-Host "  applied : $script:Applied"
Write-Host "  skipped : $script:Skipped"
Write-Host "  warned  : $script:Warned"
Write-Host "  failed  : $script:Failed"
if ($script:Failed -gt 0) {
    Write-Host 'Some steps failed; review the output above.' -ForegroundColor Yellow
}
Write-Host 'A restart is recommended to apply all changes.'
`

// emitAction renders one action as an Invoke-TweakStep block.
func emitAction(sb *strings.Builder, action Action, dns dnsEntry) {
	switch action.Kind {
	case ActionRegistry:
		fmt.Fprintf(sb, "Invoke-TweakStep '%s' {\n", psEscape(action.Description))
		for _, value := range action.Values {
			fmt.Fprintf(sb, "    Set-RegValue -Path '%s' -Name '%s' -Type %s -Value '%s'\n",
				psEscape(action.Path), psEscape(value.Name), value.Type, psEscape(value.Value))
		}
		sb.WriteString("}\n")
	case ActionService:
		fmt.Fprintf(sb, "Invoke-TweakStep '%s' {\n    Disable-ServiceSafe -Name '%s'\n}\n",
			psEscape(action.Description), psEscape(action.Service))
	case ActionPowerCfg:
		fmt.Fprintf(sb, "Invoke-TweakStep '%s' {\n    Set-PowerSetting -Subgroup '%s' -Setting '%s' -Index '%s'\n}\n",
			psEscape(action.Description), action.Subgroup, action.Setting, action.Index)
	case ActionTask:
		fmt.Fprintf(sb, "Invoke-TweakStep '%s' {\n    Disable-TaskSafe -Path '%s' -Name '%s'\n}\n",
			psEscape(action.Description), psEscape(action.TaskPath), psEscape(action.TaskName))
	case ActionDNS:
		fmt.Fprintf(sb, "Invoke-TweakStep '%s' {\n", psEscape(action.Description))
		fmt.Fprintf(sb, "    Get-NetAdapter -Physical | Where-Object Status -eq 'Up' | ForEach-Object {\n")
		fmt.Fprintf(sb, "        Set-DnsClientServerAddress -InterfaceIndex $_.ifIndex -ServerAddresses ('%s','%s')\n",
			dns.Primary, dns.Secondary)
		fmt.Fprintf(sb, "    }\n")
		fmt.Fprintf(sb, "    Write-OkResult 'DNS set to %s (%s, %s)'\n", psEscape(dns.Label), dns.Primary, dns.Secondary)
		sb.WriteString("}\n")
	case ActionCommand:
		fmt.Fprintf(sb, "Invoke-TweakStep '%s' {\n", psEscape(action.Description))
		for _, line := range strings.Split(action.Script, "\n") {
			sb.WriteString("    " + line + "\n")
		}
		sb.WriteString("}\n")
	}
}

// psEscape doubles single quotes for PowerShell single-quoted strings.
func psEscape(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}
