// Package store loads and saves the header profiles that describe the column
// layout of a bank's statement export.
package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"fjacquet/statement-analyzer/internal/common"
	"fjacquet/statement-analyzer/internal/logging"
	"fjacquet/statement-analyzer/internal/models"

	"gopkg.in/yaml.v3"
)

// DefaultProfileName names the built-in profile matching the original
// exports.
const DefaultProfileName = "default"

// DefaultProfilesFile is looked up when no profiles file is configured.
const DefaultProfilesFile = "profiles.yaml"

// ErrProfileNotFound is returned by Get for an unknown profile name.
var ErrProfileNotFound = errors.New("profile not found")

// Profile describes one export layout.
type Profile struct {
	Name        string         `yaml:"name" json:"name"`
	Description string         `yaml:"description,omitempty" json:"description,omitempty"`
	Delimiter   string         `yaml:"delimiter,omitempty" json:"delimiter,omitempty"`
	Encoding    string         `yaml:"encoding,omitempty" json:"encoding,omitempty"`
	Columns     models.Columns `yaml:"columns" json:"columns"`
}

// CSVOptions returns base with the delimiter and encoding of the profile
// applied. Empty profile fields keep the base value.
func (p Profile) CSVOptions(base common.CSVOptions) common.CSVOptions {
	opts := base
	if r := []rune(p.Delimiter); len(r) > 0 {
		opts.Delimiter = r[0]
	}
	if p.Encoding != "" {
		opts.Encoding = p.Encoding
	}
	return opts
}

// DefaultProfile returns the built-in profile.
func DefaultProfile() Profile {
	return Profile{
		Name:        DefaultProfileName,
		Description: "Tran Date / CHQNO / PARTICULARS / DR / CR / BAL / SOL export",
		Columns:     models.DefaultColumns(),
	}
}

type profilesFile struct {
	Profiles []Profile `yaml:"profiles"`
}

// ProfileStore manages loading and saving of header profiles.
type ProfileStore struct {
	ProfilesFile string
	logger       logging.Logger
}

// NewProfileStore creates a store for the given file name. A relative name
// is searched for in the standard locations.
func NewProfileStore(profilesFile string, logger logging.Logger) *ProfileStore {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	if profilesFile == "" {
		profilesFile = DefaultProfilesFile
	}
	return &ProfileStore{ProfilesFile: profilesFile, logger: logger}
}

// FindConfigFile looks for a configuration file in standard locations.
func (s *ProfileStore) FindConfigFile(filename string) (string, error) {
	if filepath.IsAbs(filename) {
		if _, err := os.Stat(filename); err == nil {
			return filename, nil
		}
		return "", os.ErrNotExist
	}

	locations := []string{
		filename,
		filepath.Join("config", filename),
		filepath.Join(".statement-analyzer", filename),
	}
	if homeDir, err := os.UserHomeDir(); err == nil {
		locations = append(locations, filepath.Join(homeDir, ".statement-analyzer", filename))
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location, nil
		}
	}
	return "", os.ErrNotExist
}

// LoadProfiles returns every known profile sorted by name. The built-in
// default is always present unless the file overrides it. A missing file is
// not an error.
func (s *ProfileStore) LoadProfiles() ([]Profile, error) {
	byName := map[string]Profile{DefaultProfileName: DefaultProfile()}

	filePath, err := s.FindConfigFile(s.ProfilesFile)
	switch {
	case errors.Is(err, os.ErrNotExist):
		s.logger.Debug("Profiles file not found, using built-in profile",
			logging.F(logging.FieldFile, s.ProfilesFile))
	case err != nil:
		return nil, fmt.Errorf("error resolving profiles file: %w", err)
	default:
		loaded, err := s.readProfiles(filePath)
		if err != nil {
			return nil, err
		}
		for _, p := range loaded {
			byName[p.Name] = p
		}
		s.logger.Debug("Loaded header profiles",
			logging.F(logging.FieldFile, filePath),
			logging.F(logging.FieldCount, len(loaded)))
	}

	profiles := make([]Profile, 0, len(byName))
	for _, p := range byName {
		profiles = append(profiles, p)
	}
	sort.Slice(profiles, func(i, j int) bool { return profiles[i].Name < profiles[j].Name })
	return profiles, nil
}

func (s *ProfileStore) readProfiles(filePath string) ([]Profile, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("error reading profiles file: %w", err)
	}

	// "profiles: [...]" first, then a bare list, then a name-keyed map.
	var wrapped profilesFile
	if err := yaml.Unmarshal(data, &wrapped); err == nil && len(wrapped.Profiles) > 0 {
		return normalizeProfiles(wrapped.Profiles)
	}

	var list []Profile
	if err := yaml.Unmarshal(data, &list); err == nil && len(list) > 0 {
		return normalizeProfiles(list)
	}

	var byName map[string]Profile
	if err := yaml.Unmarshal(data, &byName); err != nil {
		return nil, fmt.Errorf("error parsing profiles file: %w", err)
	}
	list = make([]Profile, 0, len(byName))
	for name, p := range byName {
		if p.Name == "" {
			p.Name = name
		}
		list = append(list, p)
	}
	return normalizeProfiles(list)
}

func normalizeProfiles(profiles []Profile) ([]Profile, error) {
	out := make([]Profile, 0, len(profiles))
	for i, p := range profiles {
		p.Name = strings.TrimSpace(p.Name)
		if p.Name == "" {
			return nil, fmt.Errorf("profile #%d has no name", i+1)
		}
		if p.Encoding != "" {
			if err := common.ValidateEncoding(p.Encoding); err != nil {
				return nil, fmt.Errorf("profile %q: %w", p.Name, err)
			}
		}
		p.Columns = p.Columns.WithDefaults()
		out = append(out, p)
	}
	return out, nil
}

// Get returns the named profile. An empty name selects the default.
func (s *ProfileStore) Get(name string) (Profile, error) {
	if name == "" {
		name = DefaultProfileName
	}
	profiles, err := s.LoadProfiles()
	if err != nil {
		return Profile{}, err
	}
	for _, p := range profiles {
		if p.Name == name {
			return p, nil
		}
	}
	return Profile{}, fmt.Errorf("%w: %s", ErrProfileNotFound, name)
}

// SaveProfile adds or replaces a profile in the profiles file, creating the
// file under .statement-analyzer/ when it does not exist yet.
func (s *ProfileStore) SaveProfile(p Profile) error {
	if strings.TrimSpace(p.Name) == "" {
		return errors.New("profile name is required")
	}

	filePath, err := s.FindConfigFile(s.ProfilesFile)
	var existing []Profile
	switch {
	case errors.Is(err, os.ErrNotExist):
		filePath = s.ProfilesFile
		if !filepath.IsAbs(filePath) {
			filePath = filepath.Join(".statement-analyzer", filePath)
		}
	case err != nil:
		return fmt.Errorf("error resolving profiles file: %w", err)
	default:
		if existing, err = s.readProfiles(filePath); err != nil {
			return err
		}
	}

	replaced := false
	for i := range existing {
		if existing[i].Name == p.Name {
			existing[i] = p
			replaced = true
		}
	}
	if !replaced {
		existing = append(existing, p)
	}

	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return fmt.Errorf("error creating directory: %w", err)
	}
	data, err := yaml.Marshal(profilesFile{Profiles: existing})
	if err != nil {
		return fmt.Errorf("error marshaling profiles: %w", err)
	}
	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return fmt.Errorf("error writing profiles: %w", err)
	}

	s.logger.Info("Saved header profile",
		logging.F(logging.FieldProfile, p.Name),
		logging.F(logging.FieldFile, filePath))
	return nil
}
