package server

import "strings"

func (s *Server) isAllowedOrigin(origin string) bool {
	for _, allowed := range s.cfg.AllowedOrigins {
		if origin == allowed {
			return true
		}
	}

	// Allow .pages.dev origins for Cloudflare Pages previews
	if strings.HasPrefix(origin, "https://") && strings.HasSuffix(origin, ".pages.dev") {
		return true
	}

	// Allow localhost for development
	return strings.HasPrefix(origin, "http://localhost")
}
