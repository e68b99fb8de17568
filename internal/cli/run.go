package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/anetops/anet-inventory/internal/anet"
	"github.com/anetops/anet-inventory/internal/branding"
	"github.com/anetops/anet-inventory/internal/cache"
	"github.com/anetops/anet-inventory/internal/config"
	"github.com/anetops/anet-inventory/internal/inventory"
	"github.com/spf13/cobra"
)

const missingCredentialsHelp = `Could not find values for the Atlantic.Net public and private keys.
They must be specified via the settings file (public_key / private_key),
environment variables (` + config.EnvAPIToken + ` / ` + config.EnvAPIKey + `),
or the --api-token / --api-key flags.`

func runRoot(cmd *cobra.Command, args []string) error {
	path := flagConfig
	if path == "" {
		path = config.DefaultPath()
	}
	settings, err := config.Load(path)
	if err != nil {
		return err
	}

	creds := settings.ResolveCredentials(flagAPIToken, flagAPIKey)

	// --env only echoes the resolved credentials; it must work even when
	// they are incomplete.
	if flagEnv {
		fmt.Fprintf(cmd.OutOrStdout(), "%s=%s\n", config.EnvAPIToken, creds.PublicKey)
		fmt.Fprintf(cmd.OutOrStdout(), "%s=%s\n", config.EnvAPIKey, creds.PrivateKey)
		return nil
	}

	if !creds.Complete() {
		fmt.Fprintln(os.Stderr, missingCredentialsHelp)
		return errors.New("missing Atlantic.Net credentials")
	}

	// Flags outrank the settings file, which outranks built-in defaults.
	cachePath := settings.CachePath
	if flagCachePath != "" {
		cachePath = flagCachePath
	}
	maxAge := settings.CacheMaxAge
	if cmd.Flags().Changed("cache-max-age") {
		maxAge = flagCacheMaxAge
	}

	// ANET_API_URL points the client at a different endpoint (staging,
	// mock server); production runs never set it.
	var clientOpts []anet.Option
	if base := os.Getenv(branding.EnvVar("API_URL")); base != "" {
		clientOpts = append(clientOpts, anet.WithBaseURL(base))
	}

	r := &runner{
		client:   anet.New(creds.PublicKey, creds.PrivateKey, clientOpts...),
		store:    cache.New(cachePath, time.Duration(maxAge)*time.Second),
		settings: settings,
		doc:      &cache.Document{},
		force:    flagForceCache,
		refresh:  flagRefreshCache,
	}
	return r.run(cmd)
}

// runner carries the state of one inventory invocation: the loaded cache
// document, whether it was valid, and whether fresh data was fetched.
type runner struct {
	client   *anet.Client
	store    *cache.Store
	settings *config.Settings
	doc      *cache.Document
	force    bool
	refresh  bool
	valid    bool
	fetched  bool
}

func (r *runner) run(cmd *cobra.Command) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	r.valid = r.store.Valid()
	if r.valid || r.force {
		doc, err := r.store.Load()
		if err != nil {
			return err
		}
		if doc != nil {
			r.doc = doc
		}
	}
	if r.force && r.doc.Empty() {
		return errors.New("cache is empty and --force-cache was specified")
	}

	var payload any
	switch {
	case flagCloudServers:
		if err := r.fetch(ctx, resourceCloudServers); err != nil {
			return err
		}
		payload = map[string]any{"cloudservers": r.doc.Data.CloudServers}
	case flagImages:
		if err := r.fetch(ctx, resourceImages); err != nil {
			return err
		}
		payload = map[string]any{"images": r.doc.Data.Images}
	case flagPlans:
		if err := r.fetch(ctx, resourcePlans); err != nil {
			return err
		}
		payload = map[string]any{"plans": r.doc.Data.Plans}
	case flagSSHKeys:
		if err := r.fetch(ctx, resourceSSHKeys); err != nil {
			return err
		}
		payload = map[string]any{"ssh_keys": r.doc.Data.SSHKeys}
	case flagAll:
		if err := r.fetch(ctx, resourceAll); err != nil {
			return err
		}
		payload = r.doc.Data
	case flagHost != "":
		server, err := r.client.GetCloudServer(ctx, flagHost)
		if err != nil {
			return err
		}
		payload = map[string]any{"cloudserver": inventory.HostVariables(server)}
	default: // --list is the default command
		if err := r.fetch(ctx, resourceCloudServers); err != nil {
			return err
		}
		doc := inventory.Build(r.doc.Data.CloudServers, inventory.Options{
			UsePrivateNetwork: r.settings.UsePrivateNetwork,
			GroupVariables:    r.settings.GroupVariables,
		})
		r.doc.Inventory = doc
		payload = doc
	}

	if r.fetched {
		if err := r.store.Save(r.doc); err != nil {
			// A cache write failure should not fail the inventory run.
			fmt.Fprintf(os.Stderr, "warning: %v\n", err)
		}
	}

	return printJSON(cmd.OutOrStdout(), payload, flagPretty)
}

type resource int

const (
	resourceAll resource = iota
	resourceCloudServers
	resourceImages
	resourcePlans
	resourceSSHKeys
)

// fetch refreshes the requested resource from the API. Cloud servers are
// always refetched so host addresses stay accurate; other resources trust
// a valid cache. --force-cache skips the network entirely and
// --refresh-cache refetches everything.
func (r *runner) fetch(ctx context.Context, res resource) error {
	if r.force {
		return nil
	}
	if r.valid && res != resourceCloudServers && res != resourceAll {
		return nil
	}
	if r.refresh {
		res = resourceAll
	}

	if res == resourceCloudServers || res == resourceAll {
		servers, err := r.client.ListCloudServers(ctx)
		if err != nil {
			return fmt.Errorf("fetching cloud servers: %w", err)
		}
		r.doc.Data.CloudServers = servers
		r.fetched = true
	}
	if res == resourceImages || res == resourceAll {
		images, err := r.client.ListImages(ctx)
		if err != nil {
			return fmt.Errorf("fetching images: %w", err)
		}
		r.doc.Data.Images = images
		r.fetched = true
	}
	if res == resourcePlans || res == resourceAll {
		plans, err := r.client.ListPlans(ctx)
		if err != nil {
			return fmt.Errorf("fetching plans: %w", err)
		}
		r.doc.Data.Plans = plans
		r.fetched = true
	}
	if res == resourceSSHKeys || res == resourceAll {
		keys, err := r.client.ListSSHKeys(ctx)
		if err != nil {
			return fmt.Errorf("fetching ssh keys: %w", err)
		}
		r.doc.Data.SSHKeys = keys
		r.fetched = true
	}
	return nil
}
