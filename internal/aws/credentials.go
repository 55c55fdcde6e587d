package aws

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/ini.v1"
)

type CredentialSource int

const (
	CredentialSourceSharedCredentials CredentialSource = iota
	CredentialSourceSharedConfig
	CredentialSourceEnvironment
)

type CredentialInfo struct {
	Profile         string
	Source          CredentialSource
	HasAccessKey    bool
	HasSecretKey    bool
	HasSessionToken bool
	RoleARN         string
	SourceProfile   string
}

type CredentialDiscovery struct {
	credentialsPath string
	configPath      string
}

// NewCredentialDiscovery creates a new CredentialDiscovery instance with the
// default AWS paths, honoring AWS_SHARED_CREDENTIALS_FILE and AWS_CONFIG_FILE.
func NewCredentialDiscovery() *CredentialDiscovery {
	creds := os.Getenv("AWS_SHARED_CREDENTIALS_FILE")
	if creds == "" {
		creds = filepath.Join(expandHomeDir("~"), ".aws", "credentials")
	}
	cfg := os.Getenv("AWS_CONFIG_FILE")
	if cfg == "" {
		cfg = filepath.Join(expandHomeDir("~"), ".aws", "config")
	}

	return NewCredentialDiscoveryAt(creds, cfg)
}

// NewCredentialDiscoveryAt creates a CredentialDiscovery reading the given files.
func NewCredentialDiscoveryAt(credentialsPath, configPath string) *CredentialDiscovery {
	return &CredentialDiscovery{
		credentialsPath: credentialsPath,
		configPath:      configPath,
	}
}

// DiscoverProfiles discovers and returns all available profiles from both credentials and config files.
// Profiles from config file are prefixed with "profile " except for [default].
// Returns an empty list if neither file exists, not an error.
func (d *CredentialDiscovery) DiscoverProfiles() ([]string, error) {
	profileMap := make(map[string]bool)

	// Load profiles from credentials file
	if _, err := os.Stat(d.credentialsPath); err == nil {
		credFile, err := ini.Load(d.credentialsPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load credentials file: %w", err)
		}

		for _, section := range credFile.Sections() {
			name := section.Name()
			if name != ini.DefaultSection {
				profileMap[name] = true
			}
		}
	}

	// Load profiles from config file
	if _, err := os.Stat(d.configPath); err == nil {
		configFile, err := ini.Load(d.configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}

		for _, section := range configFile.Sections() {
			name := section.Name()
			switch {
			case name == "default":
				profileMap["default"] = true
			case name == ini.DefaultSection && len(section.Keys()) > 0:
				profileMap["default"] = true
			case strings.HasPrefix(name, "profile "):
				profileMap[strings.TrimPrefix(name, "profile ")] = true
			}
		}
	}

	profiles := make([]string, 0, len(profileMap))
	for profile := range profileMap {
		profiles = append(profiles, profile)
	}
	slices.Sort(profiles)

	return profiles, nil
}

// GetCredentialInfo retrieves credential information for a given profile.
// It checks both the credentials and config files, with credentials file taking precedence.
func (d *CredentialDiscovery) GetCredentialInfo(profile string) (*CredentialInfo, error) {
	info := &CredentialInfo{
		Profile: profile,
	}

	// Check credentials file first
	if _, err := os.Stat(d.credentialsPath); err == nil {
		credFile, err := ini.Load(d.credentialsPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load credentials file: %w", err)
		}

		section, err := credFile.GetSection(profile)
		if err == nil {
			info.Source = CredentialSourceSharedCredentials
			info.HasAccessKey = section.HasKey("aws_access_key_id")
			info.HasSecretKey = section.HasKey("aws_secret_access_key")
			info.HasSessionToken = section.HasKey("aws_session_token")

			if section.HasKey("role_arn") {
				info.RoleARN = section.Key("role_arn").String()
			}
			if section.HasKey("source_profile") {
				info.SourceProfile = section.Key("source_profile").String()
			}

			return info, nil
		}
	}

	// Check config file
	if _, err := os.Stat(d.configPath); err == nil {
		configFile, err := ini.Load(d.configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}

		var section *ini.Section
		if profile == "default" {
			section, err = configFile.GetSection("default")
			if err != nil {
				section, err = configFile.GetSection(ini.DefaultSection)
			}
		} else {
			section, err = configFile.GetSection("profile " + profile)
		}

		if err == nil {
			info.Source = CredentialSourceSharedConfig
			info.HasAccessKey = section.HasKey("aws_access_key_id")
			info.HasSecretKey = section.HasKey("aws_secret_access_key")
			info.HasSessionToken = section.HasKey("aws_session_token")

			if section.HasKey("role_arn") {
				info.RoleARN = section.Key("role_arn").String()
			}
			if section.HasKey("source_profile") {
				info.SourceProfile = section.Key("source_profile").String()
			}

			return info, nil
		}
	}

	return nil, fmt.Errorf("profile %q not found in credentials or config files", profile)
}

// HasProfile returns true if the profile is configured locally.
func (d *CredentialDiscovery) HasProfile(name string) bool {
	if name == "" {
		return true
	}
	_, err := d.GetCredentialInfo(name)
	return err == nil
}

// ProfileRegion returns the region configured for a profile, if any.
func (d *CredentialDiscovery) ProfileRegion(name string) string {
	if name == "" {
		name = "default"
	}
	if _, err := os.Stat(d.configPath); err != nil {
		return ""
	}
	configFile, err := ini.Load(d.configPath)
	if err != nil {
		return ""
	}
	section := "profile " + name
	if name == "default" {
		section = "default"
		if !configFile.HasSection(section) {
			section = ini.DefaultSection
		}
	}
	sec, err := configFile.GetSection(section)
	if err != nil {
		return ""
	}

	return sec.Key("region").String()
}

// expandHomeDir expands ~ to the user's home directory.
func expandHomeDir(path string) string {
	if strings.HasPrefix(path, "~") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(homeDir, strings.TrimPrefix(path, "~"))
	}
	return path
}
