// Package parser reads OpenAPI 2.0 (Swagger) and 3.x documents into an
// ordered model of path items and operations.
//
// The model is deliberately narrow: it keeps the path template, the HTTP
// methods in source order, and for each operation its tags, operationId and
// parameters. Local parameter references (#/parameters/... and
// #/components/parameters/...) are resolved inside the document;
// references to other documents are not followed.
//
// # Quick Start
//
//	doc, err := parser.ParseWithOptions(parser.WithFilePath("swagger.yaml"))
//	if err != nil {
//		log.Fatal(err)
//	}
//	for _, item := range doc.Paths {
//		for _, method := range item.Methods() {
//			fmt.Println(method, item.Path())
//		}
//	}
//
// JSON input is accepted as well, since JSON is parsed as YAML.
//
// # Errors
//
// Unreadable files are reported as *oaserrors.InputError, malformed
// documents as *oaserrors.ParseError.
package parser
