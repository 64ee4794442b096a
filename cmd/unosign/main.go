// CLI admin para unosign (opera contra /v1/admin con un bearer de admin).
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

type client struct {
	BaseURL   string
	Token     string
	OutFormat string // "json" | "text"
	HTTP      *http.Client
}

func (c *client) do(method, path string, body []byte) (int, []byte, error) {
	u := strings.TrimRight(c.BaseURL, "/") + path
	req, err := http.NewRequest(method, u, bytes.NewReader(body))
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.Token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()
	b, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, b, nil
}

func (c *client) print(status int, body []byte) {
	if c.OutFormat == "json" {
		var v any
		if json.Unmarshal(body, &v) == nil {
			p, _ := json.MarshalIndent(v, "", "  ")
			fmt.Println(string(p))
			return
		}
	}
	if len(body) > 0 {
		fmt.Println(string(body))
	} else {
		fmt.Printf("status=%d\n", status)
	}
}

// run ejecuta la request y falla con contexto si el status no es 2xx.
func (c *client) run(method, path string, body []byte) error {
	status, respBody, err := c.do(method, path, body)
	if err != nil {
		return err
	}
	if status/100 != 2 {
		return fmt.Errorf("%s %s fallo: status=%d body=%s", method, path, status, string(respBody))
	}
	c.print(status, respBody)
	return nil
}

func main() {
	var (
		baseURL = envOr("UNOSIGN_URL", "http://localhost:8080")
		token   = envOr("UNOSIGN_TOKEN", "")
		out     = envOr("UNOSIGN_OUT", "text")
	)

	root := &cobra.Command{
		Use:   "unosign",
		Short: "CLI admin para el broker SSO (solo /v1/admin)",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if token == "" {
				return fmt.Errorf("falta bearer token (flag --token o env UNOSIGN_TOKEN)")
			}
			return nil
		},
	}

	root.PersistentFlags().StringVar(&baseURL, "url", baseURL, "URL base del broker (env UNOSIGN_URL)")
	root.PersistentFlags().StringVar(&token, "token", token, "Bearer token con rol admin (env UNOSIGN_TOKEN)")
	root.PersistentFlags().StringVar(&out, "out", out, "Formato de salida: json|text")

	cl := &client{BaseURL: baseURL, Token: token, OutFormat: out, HTTP: &http.Client{Timeout: 30 * time.Second}}

	// ---- users ----
	usersCmd := &cobra.Command{Use: "users", Short: "Operaciones sobre usuarios"}

	usersCmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "Listar usuarios",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cl.run("GET", "/v1/admin/users", nil)
		},
	})

	var roleUserID, roleName string
	var roleRemove bool
	roleCmd := &cobra.Command{
		Use:   "role",
		Short: "Agregar o quitar un rol a un usuario",
		RunE: func(cmd *cobra.Command, args []string) error {
			if roleUserID == "" || roleName == "" {
				return fmt.Errorf("--user y --role son requeridos")
			}
			action := "add_role"
			if roleRemove {
				action = "remove_role"
			}
			b, _ := json.Marshal(map[string]string{"action": action, "role": roleName})
			return cl.run("PATCH", "/v1/admin/users/"+url.PathEscape(roleUserID), b)
		},
	}
	roleCmd.Flags().StringVar(&roleUserID, "user", "", "ID del usuario")
	roleCmd.Flags().StringVar(&roleName, "role", "", "Rol (user|admin)")
	roleCmd.Flags().BoolVar(&roleRemove, "remove", false, "Quitar el rol en vez de agregarlo")
	usersCmd.AddCommand(roleCmd)

	var statusUserID, statusValue string
	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Cambiar el estado de una cuenta (active|suspended)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if statusUserID == "" || statusValue == "" {
				return fmt.Errorf("--user y --status son requeridos")
			}
			b, _ := json.Marshal(map[string]string{"action": "set_status", "status": statusValue})
			return cl.run("PATCH", "/v1/admin/users/"+url.PathEscape(statusUserID), b)
		},
	}
	statusCmd.Flags().StringVar(&statusUserID, "user", "", "ID del usuario")
	statusCmd.Flags().StringVar(&statusValue, "status", "", "Estado: active|suspended")
	usersCmd.AddCommand(statusCmd)

	// ---- entitlements ----
	entCmd := &cobra.Command{Use: "entitlements", Short: "Operaciones sobre entitlements"}

	var entListUser string
	entListCmd := &cobra.Command{
		Use:   "list",
		Short: "Listar entitlements de un usuario",
		RunE: func(cmd *cobra.Command, args []string) error {
			if entListUser == "" {
				return fmt.Errorf("--user es requerido")
			}
			return cl.run("GET", "/v1/admin/entitlements?user_id="+url.QueryEscape(entListUser), nil)
		},
	}
	entListCmd.Flags().StringVar(&entListUser, "user", "", "ID del usuario")
	entCmd.AddCommand(entListCmd)

	var grantUser, grantService, grantTier, grantUntil string
	grantCmd := &cobra.Command{
		Use:   "grant",
		Short: "Otorgar un entitlement (user, service, tier)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if grantUser == "" || grantService == "" || grantTier == "" {
				return fmt.Errorf("--user, --service y --tier son requeridos")
			}
			payload := map[string]string{
				"user_id":    grantUser,
				"service_id": grantService,
				"tier":       grantTier,
			}
			if grantUntil != "" {
				payload["valid_until"] = grantUntil
			}
			b, _ := json.Marshal(payload)
			return cl.run("POST", "/v1/admin/entitlements", b)
		},
	}
	grantCmd.Flags().StringVar(&grantUser, "user", "", "ID del usuario")
	grantCmd.Flags().StringVar(&grantService, "service", "", "ID del servicio")
	grantCmd.Flags().StringVar(&grantTier, "tier", "free", "Tier: free|pro")
	grantCmd.Flags().StringVar(&grantUntil, "until", "", "Vencimiento RFC3339 (vacío = sin vencimiento)")
	entCmd.AddCommand(grantCmd)

	var revokeUser, revokeService string
	revokeCmd := &cobra.Command{
		Use:   "revoke",
		Short: "Revocar el entitlement de un par (user, service)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if revokeUser == "" || revokeService == "" {
				return fmt.Errorf("--user y --service son requeridos")
			}
			q := "?user_id=" + url.QueryEscape(revokeUser) + "&service_id=" + url.QueryEscape(revokeService)
			return cl.run("DELETE", "/v1/admin/entitlements"+q, nil)
		},
	}
	revokeCmd.Flags().StringVar(&revokeUser, "user", "", "ID del usuario")
	revokeCmd.Flags().StringVar(&revokeService, "service", "", "ID del servicio")
	entCmd.AddCommand(revokeCmd)

	// ---- services ----
	svcCmd := &cobra.Command{Use: "services", Short: "Operaciones sobre el catálogo de servicios"}

	svcCmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "Listar servicios registrados",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cl.run("GET", "/v1/admin/services", nil)
		},
	})

	var svcID, svcName, svcDesc, svcRedirect string
	var svcFreeTier bool
	buildServicePayload := func() []byte {
		b, _ := json.Marshal(map[string]any{
			"service_id":        svcID,
			"name":              svcName,
			"description":       svcDesc,
			"redirect_url":      svcRedirect,
			"free_tier_enabled": svcFreeTier,
		})
		return b
	}
	addServiceFlags := func(c *cobra.Command) {
		c.Flags().StringVar(&svcID, "id", "", "ID del servicio (ej. notas)")
		c.Flags().StringVar(&svcName, "name", "", "Nombre visible")
		c.Flags().StringVar(&svcDesc, "description", "", "Descripción (opcional)")
		c.Flags().StringVar(&svcRedirect, "redirect-url", "", "Callback registrado del servicio")
		c.Flags().BoolVar(&svcFreeTier, "free-tier", false, "Habilitar acceso free tier automático")
	}

	createSvcCmd := &cobra.Command{
		Use:   "create",
		Short: "Registrar un servicio",
		RunE: func(cmd *cobra.Command, args []string) error {
			if svcID == "" || svcName == "" || svcRedirect == "" {
				return fmt.Errorf("--id, --name y --redirect-url son requeridos")
			}
			return cl.run("POST", "/v1/admin/services", buildServicePayload())
		},
	}
	addServiceFlags(createSvcCmd)
	svcCmd.AddCommand(createSvcCmd)

	updateSvcCmd := &cobra.Command{
		Use:   "update",
		Short: "Actualizar un servicio existente",
		RunE: func(cmd *cobra.Command, args []string) error {
			if svcID == "" {
				return fmt.Errorf("--id es requerido")
			}
			return cl.run("PUT", "/v1/admin/services/"+url.PathEscape(svcID), buildServicePayload())
		},
	}
	addServiceFlags(updateSvcCmd)
	svcCmd.AddCommand(updateSvcCmd)

	root.AddCommand(usersCmd)
	root.AddCommand(entCmd)
	root.AddCommand(svcCmd)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}

func envOr(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
