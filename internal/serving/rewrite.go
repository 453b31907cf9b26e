package serving

// RewritePath maps a request for the root path onto indexPath. Every other
// path is returned unchanged.
func RewritePath(urlPath, indexPath string) string {
	if urlPath == "/" {
		return indexPath
	}

	return urlPath
}
