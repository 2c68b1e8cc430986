// Package serverless derives Serverless Framework function configuration
// from OpenAPI documents.
//
// Every operation tagged with the API prefix becomes an HTTP trigger of a
// function. The service comes from the matching tag and the function name
// from the method and path, so "post /orders/{orderId}/items" tagged
// "api.orders" lands in service "orders" as function "postItemsWithOrdId".
// Triggers that resolve to the same service and function name are merged
// into one function.
//
// # Quick Start
//
//	result, err := serverless.GenerateWithOptions(ctx, []string{"swagger.yaml"},
//		serverless.WithAPIPrefix("api"),
//		serverless.WithBasePath(true),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//	for _, svc := range result.Services {
//		data, _ := svc.Marshal(serverless.FormatYAML)
//		os.WriteFile(svc.FileName(serverless.FormatYAML), data, 0o644)
//	}
//
// Or use a reusable Generator on documents that are already parsed:
//
//	g, _ := serverless.New(serverless.WithAPIPrefix("api"))
//	result, err := g.Generate(docs)
//
// # Pipeline
//
// The stages are exported so they can be used on their own:
// [ExtractDescriptors], [Filter], [BuildFragment] (built on [ServiceName],
// [FunctionName] and [BuildEvent]) and [Merge]. None of them keep state
// between calls.
//
// # Collisions
//
// Two operations with the same synthesized name in one service end up in a
// single function holding both triggers, and the later handler wins. Such
// merges are reported in [GenerateResult].Collisions and logged as
// warnings, except when [Options].FunctionName forces one name on purpose.
package serverless
