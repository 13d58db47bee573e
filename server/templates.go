package server

import (
	"html/template"
	"net/http"
)

// Result text is rendered through html/template, so markup-significant
// characters in agent output are escaped rather than interpreted.

const pageStyle = `
body { font-family: Arial, sans-serif; margin: 40px; background-color: #f4f7f6; color: #333; }
h1 { color: #2c3e50; text-align: center; margin-bottom: 30px; }
form { background-color: #ffffff; padding: 30px; border-radius: 10px; box-shadow: 0 4px 8px rgba(0,0,0,0.1); max-width: 500px; margin: 0 auto; }
label { display: block; margin-bottom: 10px; font-weight: bold; }
input[type=text] { width: calc(100% - 22px); padding: 12px; margin-bottom: 20px; border: 1px solid #ccc; border-radius: 5px; font-size: 16px; }
button { padding: 12px 25px; background-color: #28a745; color: white; border: none; border-radius: 5px; cursor: pointer; font-size: 16px; display: block; width: 100%; }
button:hover { background-color: #218838; }
.result { margin-top: 30px; padding: 25px; border: 1px solid #e0e0e0; border-radius: 10px; background-color: #ffffff; white-space: pre-wrap; font-family: 'Courier New', Courier, monospace; font-size: 14px; line-height: 1.6; }
a { display: block; text-align: center; margin-top: 20px; color: #007bff; text-decoration: none; }
a:hover { color: #0056b3; }
`

var homeTemplate = template.Must(template.New("home").Parse(`<!DOCTYPE html>
<html>
<head>
<title>Multi AI Agent Search</title>
<style>{{.Style}}</style>
</head>
<body>
<h1>Multi AI Agent Search</h1>
<form action="/search" method="post">
<label for="query">Enter your enquiry:</label>
<input type="text" id="query" name="query" placeholder="e.g., Analyze companies like Tesla, NVDA, and Apple" required>
<button type="submit">Search</button>
</form>
</body>
</html>
`))

var resultTemplate = template.Must(template.New("result").Parse(`<!DOCTYPE html>
<html>
<head>
<title>Search Results</title>
<style>{{.Style}}</style>
</head>
<body>
<h1>Search Results</h1>
<div class="result">{{.Result}}</div>
<br>
<a href="/">&larr; Back to Search</a>
</body>
</html>
`))

func renderHome(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	homeTemplate.Execute(w, struct {
		Style template.CSS
	}{Style: template.CSS(pageStyle)})
}

func renderResult(w http.ResponseWriter, result string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	resultTemplate.Execute(w, struct {
		Style  template.CSS
		Result string
	}{Style: template.CSS(pageStyle), Result: result})
}
